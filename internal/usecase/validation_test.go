package usecase

import (
	"testing"

	testhelpers "github.com/domainmart/domainmart/internal/test"
)

func TestValidateHostname(t *testing.T) {
	valid := []string{
		"example.com",
		"ns1.example.co.uk",
		"a.b",
		"xn--bcher-kva.de",
		"example.com.",
	}
	for _, h := range valid {
		if !ValidateHostname(h) {
			t.Errorf("expected %q to be valid", h)
		}
	}

	invalid := []string{
		"",
		"-example.com",
		"example-.com",
		"exa mple.com",
		"example..com",
		".example.com",
		"under_score.com",
	}
	for _, h := range invalid {
		if ValidateHostname(h) {
			t.Errorf("expected %q to be invalid", h)
		}
	}
}

func TestSplitDomainAcceptsGeneratedNames(t *testing.T) {
	for i := 0; i < 25; i++ {
		name := testhelpers.RandomDomainName("sbs")
		root, tld, ok := SplitDomain(name)
		if !ok || tld != "sbs" || root+"."+tld != name {
			t.Fatalf("SplitDomain(%q) = (%q, %q, %v)", name, root, tld, ok)
		}
	}
}

func TestValidateNameserverSet(t *testing.T) {
	if !ValidateNameserverSet([]string{"ns1.example.com", "ns2.example.com"}) {
		t.Fatal("expected two valid nameservers to pass")
	}
	if ValidateNameserverSet([]string{"ns1.example.com"}) {
		t.Fatal("expected single nameserver to fail")
	}
	if ValidateNameserverSet([]string{"a.b", "c.d", "e.f", "g.h", "i.j"}) {
		t.Fatal("expected five nameservers to fail")
	}
	if ValidateNameserverSet([]string{"ns1.example.com", "bad host"}) {
		t.Fatal("expected invalid hostname in set to fail")
	}
}

func TestSplitDomain(t *testing.T) {
	cases := []struct {
		input string
		root  string
		tld   string
		ok    bool
	}{
		{"example.sbs", "example", "sbs", true},
		{"Example.COM", "example", "com", true},
		{"shop.com.br", "shop", "com.br", true},
		{"trailing.dot.", "trailing", "dot", true},
		{"nodot", "", "", false},
		{"", "", "", false},
		{"bad..name", "", "", false},
	}

	for _, tc := range cases {
		root, tld, ok := SplitDomain(tc.input)
		if ok != tc.ok || root != tc.root || tld != tc.tld {
			t.Errorf("SplitDomain(%q) = (%q, %q, %v), expected (%q, %q, %v)",
				tc.input, root, tld, ok, tc.root, tc.tld, tc.ok)
		}
	}
}
