package model

import "testing"

func TestPaymentStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   PaymentStatus
		value string
	}{
		{"pending", PaymentStatusPending, "pending"},
		{"confirmed", PaymentStatusConfirmed, "confirmed"},
		{"completed", PaymentStatusCompleted, "completed"},
		{"failed", PaymentStatusFailed, "failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestNameserverModeValues(t *testing.T) {
	cases := []struct {
		mode  NameserverMode
		value string
	}{
		{NameserverModeCloudflare, "cloudflare"},
		{NameserverModeCustom, "custom"},
		{NameserverModeRegistrar, "registrar"},
	}

	for _, tc := range cases {
		if string(tc.mode) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.mode)
		}
	}
}

func TestFailureReasonValues(t *testing.T) {
	cases := []struct {
		reason FailureReason
		value  string
	}{
		{FailureOrderInvalid, "ORDER_INVALID"},
		{FailureTldNotAllowed, "TLD_NOT_ALLOWED"},
		{FailureDNSZone, "DNS_ZONE_FAILURE"},
		{FailureContact, "CONTACT_FAILURE"},
		{FailureRegistration, "REGISTRATION_FAILURE"},
		{FailurePersistence, "PERSISTENCE_FAILURE"},
		{FailureUnreconciledDuplicate, "UNRECONCILED_DUPLICATE"},
	}

	for _, tc := range cases {
		if string(tc.reason) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.reason)
		}
	}
}
