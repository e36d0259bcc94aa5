// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Calorique

package technibel

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// randomizeState drives every setter with random input, valid or not
func randomizeState(rng *rand.Rand, ac *AC) {
	ac.SetPower(rng.Intn(2) == 1)
	ac.SetMode(uint8(rng.Intn(16)))
	ac.SetTemp(uint8(rng.Intn(256)), rng.Intn(2) == 1)
	ac.SetFan(uint8(rng.Intn(8)))
	ac.SetSwing(rng.Intn(2) == 1)
	ac.SetSleep(rng.Intn(2) == 1)
	ac.SetTimer(uint16(rng.Intn(3000)))
}

// TestFuzzSetterInvariants checks that arbitrary setter input always lands in
// the legal range and always produces a checksummed frame.
func TestFuzzSetterInvariants(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	ac := New()
	for round := 0; round < rounds; round++ {
		randomizeState(rng, ac)

		mode := ac.Mode()
		if mode != ModeCool && mode != ModeDry && mode != ModeFan && mode != ModeHeat {
			t.Fatalf("round %d: illegal mode code %d", round, mode)
		}
		fan := ac.Fan()
		if fan < FanLow || fan > FanHigh {
			t.Fatalf("round %d: fan code %d out of range", round, fan)
		}
		if mode == ModeDry && fan != FanLow {
			t.Fatalf("round %d: dry mode with fan %d", round, fan)
		}

		lo, hi := uint8(TempMinC), uint8(TempMaxC)
		if ac.TempUnit() {
			lo, hi = TempMinF, TempMaxF
		}
		if temp := ac.Temp(); temp < lo || temp > hi {
			t.Fatalf("round %d: temp %d outside [%d,%d]", round, temp, lo, hi)
		}

		if timer := ac.Timer(); timer > TimerMax*60 || timer%60 != 0 {
			t.Fatalf("round %d: timer %d minutes", round, timer)
		}

		if !ValidChecksum(ac.Raw()) {
			t.Fatalf("round %d: Raw() emitted a bad checksum", round)
		}
	}
}

// TestFuzzCodecRoundTrip checks that every reachable state survives an
// encode/decode cycle bit for bit.
func TestFuzzCodecRoundTrip(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	enc := NewEncoder()
	dec := NewDecoder()
	ac := New()
	for round := 0; round < rounds; round++ {
		randomizeState(rng, ac)
		want := ac.Raw()

		result, err := dec.Decode(enc.Encode(ac))
		if err != nil {
			t.Fatalf("round %d: decode of state 0x%014X: %v", round, want, err)
		}
		if result.Value != want {
			t.Fatalf("round %d: round trip 0x%014X -> 0x%014X", round, want, result.Value)
		}
	}
}

// TestFuzzDecodeJitter checks decode stability under random timing jitter
// inside the tolerance window.
func TestFuzzDecodeJitter(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	enc := NewEncoder()
	dec := NewDecoder()
	ac := New()
	for round := 0; round < rounds; round++ {
		randomizeState(rng, ac)
		want := ac.Raw()

		pulses := enc.Encode(ac)
		for i, p := range pulses {
			// up to +/-15% keeps marks clear of the excess margin too
			jitter := time.Duration(rng.Int63n(int64(p)*30/100)) - p*15/100
			pulses[i] = p + jitter
		}

		result, err := dec.Decode(pulses)
		if err != nil {
			t.Fatalf("round %d: jittered decode of 0x%014X: %v", round, want, err)
		}
		if result.Value != want {
			t.Fatalf("round %d: jittered round trip 0x%014X -> 0x%014X",
				round, want, result.Value)
		}
	}
}

// TestFuzzDecodeGarbage feeds random pulse trains; the decoder must reject
// them without panicking (a random train passing the full framing check is
// not credible).
func TestFuzzDecodeGarbage(t *testing.T) {
	rng := newFuzzRng(t)
	rounds := getFuzzRounds()

	dec := NewDecoder()
	for round := 0; round < rounds; round++ {
		n := rng.Intn(300)
		pulses := make([]time.Duration, n)
		for i := range pulses {
			pulses[i] = time.Duration(rng.Intn(20000)) * time.Microsecond
		}
		if result, err := dec.Decode(pulses); err == nil {
			t.Fatalf("round %d: random train decoded as 0x%014X", round, result.Value)
		}
	}
}
