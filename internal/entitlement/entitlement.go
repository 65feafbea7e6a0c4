// Package entitlement resolves a user's subscription plan from their
// identity-provider metadata and answers whether that plan unlocks a
// content category.
//
// Everything here is pure and fails closed: malformed metadata means
// no entitlement, never an error, because the metadata bag is
// externally controlled and must not be able to break the app.
package entitlement

import (
	"fmt"
	"strings"

	"github.com/lucasfiiresearch/pocket/internal/content"
)

// Plan is a subscription plan code as it appears in the identity
// provider's public metadata.
type Plan string

const (
	PlanNone        Plan = "none"
	PlanBasic       Plan = "basic"
	PlanAnnualBasic Plan = "annualbasic"
	PlanEtfsWallet  Plan = "etfs_wallet"
	PlanLowCost     Plan = "lowcost"
)

// Entitlement is the resolved view of a user's subscription. It is
// derived per evaluation and never stored; resolve again whenever the
// user record may have changed.
type Entitlement struct {
	Plan   Plan
	Active bool
}

// Plan evidence lives in two metadata fields with overlapping but not
// identical value sets; either one matching counts. planType is a
// legacy secondary signal.
// TODO: confirm with product whether planType can be retired in favor
// of subscriptionPlan alone.
const (
	primaryField   = "subscriptionPlan"
	secondaryField = "planType"
)

var primaryPlans = map[string]Plan{
	"basic":       PlanBasic,
	"annualbasic": PlanAnnualBasic,
	"etfs_wallet": PlanEtfsWallet,
	"lowcost":     PlanLowCost,
}

var secondaryPlans = map[string]Plan{
	"basic":       PlanBasic,
	"annual":      PlanAnnualBasic,
	"etfs_wallet": PlanEtfsWallet,
}

// Resolve derives the entitlement from a publicMetadata bag. It is
// total: absent, unrecognized or non-string fields yield the
// no-entitlement value.
func Resolve(metadata map[string]any) Entitlement {
	if plan, ok := lookup(metadata, primaryField, primaryPlans); ok {
		return Entitlement{Plan: plan, Active: true}
	}
	if plan, ok := lookup(metadata, secondaryField, secondaryPlans); ok {
		return Entitlement{Plan: plan, Active: true}
	}

	return Entitlement{Plan: PlanNone}
}

func lookup(metadata map[string]any, field string, known map[string]Plan) (Plan, bool) {
	v, ok := metadata[field]
	if !ok {
		return PlanNone, false
	}
	s, ok := v.(string)
	if !ok {
		return PlanNone, false
	}

	plan, ok := known[s]
	return plan, ok
}

// Which plans unlock which category. A missing entry means the
// category is open to any authenticated user.
var required = map[content.Category][]Plan{
	content.CategoryThesisVideos:  {PlanBasic, PlanAnnualBasic},
	content.CategoryWeeklyReports: {PlanBasic, PlanAnnualBasic},
	content.CategoryEtfReports:    {PlanBasic, PlanAnnualBasic, PlanEtfsWallet},
}

// CanAccess reports whether the entitlement satisfies the category's
// requirement.
//
// Call it at the moment of each access attempt. Deciding once at
// render time and reusing the answer acts on a stale plan if the
// subscription changed mid-session.
func CanAccess(e Entitlement, cat content.Category) bool {
	plans, gated := required[cat]
	if !gated {
		return true
	}

	for _, p := range plans {
		if e.Plan == p {
			return true
		}
	}

	return false
}

// Required returns the plans that unlock the category, or nil when it
// is ungated.
func Required(cat content.Category) []Plan {
	plans := required[cat]
	if len(plans) == 0 {
		return nil
	}

	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

var planNames = map[Plan]string{
	PlanBasic:       "Basic",
	PlanAnnualBasic: "Annual Basic",
	PlanEtfsWallet:  "ETFs Wallet",
	PlanLowCost:     "Low Cost",
}

// DenialMessage explains a refusal: which plans unlock the category
// and where to upgrade. Empty for ungated categories.
func DenialMessage(cat content.Category) string {
	plans := required[cat]
	if len(plans) == 0 {
		return ""
	}

	names := make([]string, len(plans))
	for i, p := range plans {
		names[i] = planNames[p]
	}

	var list string
	if len(names) == 1 {
		list = names[0]
	} else {
		list = strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}

	return fmt.Sprintf("This content requires the %s plan. Visit lucasfiiresearch.com.br to get yours.", list)
}
