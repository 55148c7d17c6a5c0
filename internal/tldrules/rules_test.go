package tldrules

import "testing"

func TestRecommendUnknownTldIsUnrestricted(t *testing.T) {
	rec := Recommend("sbs", false)
	if !rec.CanRegister {
		t.Fatal("expected unrestricted TLD to be registrable")
	}
	if rec.Risk != RiskLow {
		t.Fatalf("expected low risk, got %s", rec.Risk)
	}
	if rec.AdditionalDataNeeded {
		t.Fatal("expected no additional data for unrestricted TLD")
	}
}

func TestRecommendNormalizesInput(t *testing.T) {
	rec := Recommend(".IT", false)
	if !rec.AdditionalDataNeeded {
		t.Fatal("expected additional data flag for it")
	}
	if rec.AdditionalFields["it_accept_trustee_tac"] != "1" {
		t.Fatalf("expected fixed acceptance flag, got %v", rec.AdditionalFields)
	}
}

func TestRecommendTrusteeAvailableKeepsRegistrable(t *testing.T) {
	rec := Recommend("hu", false)
	if !rec.CanRegister {
		t.Fatal("expected registrable with trustee service")
	}
	if rec.Risk != RiskHigh {
		t.Fatalf("expected high risk, got %s", rec.Risk)
	}
	if !rec.TrusteeServiceAvailable {
		t.Fatal("expected trustee service availability")
	}
}

func TestRecommendTrusteeUnavailableBlocksRegistration(t *testing.T) {
	for _, tld := range []string{"no", "com.br"} {
		rec := Recommend(tld, false)
		if rec.CanRegister {
			t.Fatalf("%s: expected registration to be blocked", tld)
		}
		if rec.Risk != RiskHigh {
			t.Fatalf("%s: expected high risk, got %s", tld, rec.Risk)
		}
	}
}

func TestRecommendPreRegistrationDNS(t *testing.T) {
	rec := Recommend("de", false)
	if !rec.RequiresPreRegistration {
		t.Fatal("expected pre-registration DNS requirement for de")
	}
	if rec.PreRegistrationWarning != "" {
		t.Fatal("expected no custom-nameserver warning when zone is managed")
	}

	rec = Recommend("de", true)
	if rec.PreRegistrationWarning == "" {
		t.Fatal("expected warning when custom nameservers are used with pre-registration TLD")
	}
	if !rec.CanRegister {
		t.Fatal("custom nameservers must not block registration")
	}
}

func TestRecommendDoesNotLeakTableState(t *testing.T) {
	rec := Recommend("it", false)
	rec.AdditionalFields["it_accept_trustee_tac"] = "0"
	rec.Warnings = append(rec.Warnings[:0], "mutated")

	again := Recommend("it", false)
	if again.AdditionalFields["it_accept_trustee_tac"] != "1" {
		t.Fatal("table additional fields were mutated by caller")
	}
	if len(again.Warnings) == 0 || again.Warnings[0] == "mutated" {
		t.Fatal("table warnings were mutated by caller")
	}
}
