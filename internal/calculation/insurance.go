package calculation

import (
	"strings"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
)

// insuranceMapping maps substrings of the KP free-text membership
// description onto insurance groups. The order matters: the first matching
// key wins, so the dormant-membership text ("Ja - Basis (hvilende)") must be
// tried before the bare "Nej".
var insuranceMapping = []struct {
	key   string
	group domain.InsuranceGroup
}{
	{"gruppe 1", domain.GroupOne},
	{"gruppe 2", domain.GroupTwo},
	{"gruppe 5", domain.GroupFive},
	{"ja - basis (hvilende)", domain.GroupNonMember},
	{"nej", domain.GroupNonMember},
}

// ParseInsuranceGroup resolves the free-text Sygeforsikring "danmark"
// description to a membership group by ordered, case-insensitive substring
// match. Text matching no key resolves to GroupUnknown.
func ParseInsuranceGroup(text string) domain.InsuranceGroup {
	lowered := strings.ToLower(text)
	for _, m := range insuranceMapping {
		if strings.Contains(lowered, m.key) {
			return m.group
		}
	}
	return domain.GroupUnknown
}
