package logic

import (
	"testing"
	"time"
)

const testThreshold = 20 * time.Millisecond

func TestDebouncerSinglePress(t *testing.T) {
	var now Ticks
	d := NewDebouncer(testThreshold, func() Ticks { return now })

	if d.Poll(true) {
		t.Fatal("changed sample must not edge before the threshold")
	}
	now += 25
	if !d.Poll(true) {
		t.Fatal("press held past the threshold must edge")
	}
	now += 25
	if d.Poll(true) {
		t.Fatal("held press must not edge a second time")
	}
	if !d.Pressed() {
		t.Fatal("confirmed state must be pressed")
	}
}

func TestDebouncerDiscardsNoise(t *testing.T) {
	var now Ticks
	d := NewDebouncer(testThreshold, func() Ticks { return now })

	if d.Poll(true) {
		t.Fatal("noise onset must not edge")
	}
	now += 25
	if d.Poll(false) {
		t.Fatal("sample that reverted before the re-sample must be discarded")
	}
	now += 25
	if d.Poll(false) {
		t.Fatal("quiet line must stay edge-free")
	}
	if d.Pressed() {
		t.Fatal("noise must not change the confirmed state")
	}
}

func TestDebouncerThresholdBoundary(t *testing.T) {
	var now Ticks
	d := NewDebouncer(testThreshold, func() Ticks { return now })

	d.Poll(true)
	now += 10
	if d.Poll(true) {
		t.Fatal("must not edge while under the threshold")
	}
	now += 10
	if !d.Poll(true) {
		t.Fatal("must edge exactly at the threshold")
	}
}

func TestDebouncerNeverEdgesOnRelease(t *testing.T) {
	var now Ticks
	d := NewDebouncer(testThreshold, func() Ticks { return now })

	d.Poll(true)
	now += 25
	if !d.Poll(true) {
		t.Fatal("press must edge")
	}
	now += 25
	if d.Poll(false) {
		t.Fatal("release onset must not edge")
	}
	now += 25
	if d.Poll(false) {
		t.Fatal("confirmed release must not edge")
	}
	if d.Pressed() {
		t.Fatal("confirmed state must track the release")
	}

	// A second full press still produces exactly one edge.
	d.Poll(true)
	now += 25
	if !d.Poll(true) {
		t.Fatal("second press must edge")
	}
}
