package cooldown

import (
	"testing"
	"time"
)

func TestAdmitWithinWindowRejected(t *testing.T) {
	tr := New(time.Second)
	start := time.UnixMilli(10_000)

	if !tr.Admit("u1", start) {
		t.Fatal("first message rejected")
	}
	if tr.Admit("u1", start.Add(999*time.Millisecond)) {
		t.Fatal("message 999ms later admitted")
	}
}

func TestAdmitSpacedMessages(t *testing.T) {
	tr := New(time.Second)
	start := time.UnixMilli(10_000)

	if !tr.Admit("u1", start) {
		t.Fatal("first message rejected")
	}
	if !tr.Admit("u1", start.Add(time.Second)) {
		t.Fatal("message exactly 1s later rejected")
	}
}

func TestRejectedMessageDoesNotResetWindow(t *testing.T) {
	tr := New(time.Second)
	start := time.UnixMilli(10_000)

	tr.Admit("u1", start)
	tr.Admit("u1", start.Add(600*time.Millisecond))

	if !tr.Admit("u1", start.Add(1100*time.Millisecond)) {
		t.Fatal("window was extended by a rejected message")
	}
}

func TestUsersAreIndependent(t *testing.T) {
	tr := New(0)
	now := time.UnixMilli(5_000)

	if !tr.Admit("u1", now) || !tr.Admit("u2", now) {
		t.Fatal("distinct users should not share a cooldown")
	}
	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}
}
