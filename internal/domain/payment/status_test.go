package payment

import "testing"

func TestExtendsShop(t *testing.T) {
	cases := []struct {
		old, next Status
		want      bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusFailed, StatusCompleted, true},
		{StatusCompleted, StatusCompleted, false},
		{StatusCompleted, StatusRefunded, false},
		{StatusPending, StatusFailed, false},
	}
	for _, tc := range cases {
		if got := ExtendsShop(tc.old, tc.next); got != tc.want {
			t.Fatalf("ExtendsShop(%s, %s) = %v", tc.old, tc.next, got)
		}
	}
}

func TestMethodValid(t *testing.T) {
	if !MethodNequi.Valid() || Method("bitcoin").Valid() {
		t.Fatalf("unexpected method validity")
	}
}
