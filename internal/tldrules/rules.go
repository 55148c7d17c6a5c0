package tldrules

import "strings"

// RiskLevel grades how hard a TLD is to register cleanly.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Recommendation reports whether registration can proceed for a TLD and
// under what constraints.
type Recommendation struct {
	CanRegister          bool
	Risk                 RiskLevel
	Warnings             []string
	AdditionalDataNeeded bool
	// AdditionalFields carries registrar extension fields that must accompany
	// the registration request, e.g. a fixed acceptance flag.
	AdditionalFields         map[string]string
	TrusteeServiceAvailable  bool
	RequiresPreRegistration  bool
	PreRegistrationWarning   string
	LocalPresenceRequirement bool
}

type requirements struct {
	risk             RiskLevel
	trusteeRequired  bool
	trusteeAvailable bool
	extraFields      map[string]string
	preRegistration  bool
	warnings         []string
}

// Static table of TLD constraints. Unlisted TLDs are treated as unrestricted.
var table = map[string]requirements{
	"it": {
		risk:        RiskMedium,
		extraFields: map[string]string{"it_accept_trustee_tac": "1"},
		warnings:    []string{"registry mandates explicit terms acceptance"},
	},
	"de": {
		risk:            RiskMedium,
		preRegistration: true,
		warnings:        []string{"registry validates an existing A record before activation"},
	},
	"eu": {
		risk:        RiskMedium,
		extraFields: map[string]string{"eu_country_of_citizenship": "required"},
		warnings:    []string{"registrant must provide EU residency details"},
	},
	"fr": {
		risk:        RiskMedium,
		extraFields: map[string]string{"registrant_vat": "required", "birth_date": "required"},
		warnings:    []string{"registry requires extended registrant verification"},
	},
	"hu": {
		risk:             RiskHigh,
		trusteeRequired:  true,
		trusteeAvailable: true,
		warnings:         []string{"local presence satisfied via trustee service"},
	},
	"com.br": {
		risk:             RiskHigh,
		trusteeRequired:  true,
		trusteeAvailable: false,
		warnings:         []string{"registry requires a local legal entity"},
	},
	"no": {
		risk:             RiskHigh,
		trusteeRequired:  true,
		trusteeAvailable: false,
		warnings:         []string{"registry requires a Norwegian organization number"},
	},
	"cn": {
		risk:     RiskHigh,
		warnings: []string{"registry performs real-name verification after registration"},
	},
}

// Recommend reports registration constraints for a TLD. Pure function over
// the static table; safe to call repeatedly.
func Recommend(tld string, usesCustomNameservers bool) Recommendation {
	tld = strings.TrimPrefix(strings.ToLower(tld), ".")

	req, known := table[tld]
	if !known {
		return Recommendation{CanRegister: true, Risk: RiskLow}
	}

	rec := Recommendation{
		CanRegister:              true,
		Risk:                     req.risk,
		Warnings:                 append([]string(nil), req.warnings...),
		TrusteeServiceAvailable:  req.trusteeAvailable,
		RequiresPreRegistration:  req.preRegistration,
		LocalPresenceRequirement: req.trusteeRequired,
	}

	if len(req.extraFields) > 0 {
		rec.AdditionalDataNeeded = true
		rec.AdditionalFields = make(map[string]string, len(req.extraFields))
		for k, v := range req.extraFields {
			rec.AdditionalFields[k] = v
		}
	}

	if req.trusteeRequired && !req.trusteeAvailable {
		rec.CanRegister = false
	}

	if req.preRegistration && usesCustomNameservers {
		rec.PreRegistrationWarning = "registry validates DNS before activation; ensure the custom nameservers already answer for this domain"
		rec.Warnings = append(rec.Warnings, rec.PreRegistrationWarning)
	}

	return rec
}
