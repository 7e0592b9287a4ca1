package dossier

import (
	"github.com/kittclouds/bce/pkg/claims"
	"github.com/kittclouds/bce/pkg/conflict"
	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/model"
)

// EventDossier is the stable key set of §4.7.
type EventDossier struct {
	Id                     model.EntityId              `json:"id"`
	Label                  string                       `json:"label"`
	Participants           []model.EntityId             `json:"participants,omitempty"`
	Accounts               []model.EventAccount         `json:"accounts,omitempty"`
	AccountConflicts       map[string]map[string]string `json:"account_conflicts"`
	AccountConflictSummaries map[string]conflict.Summary `json:"account_conflict_summaries"`
	ClaimGraph             ClaimGraph                    `json:"claim_graph"`
	Parallels              []model.Parallel              `json:"parallels,omitempty"`
	Citations              []string                      `json:"citations,omitempty"`
	TextualVariants        []model.TextualVariant         `json:"textual_variants,omitempty"`
	SchemaVersion          string                          `json:"schema_version"`
	Aborted                bool                            `json:"aborted,omitempty"`
}

// BuildEventDossier composes an EventDossier per §4.7:
// account_conflicts is computed field-wise across EventAccount entries
// for {summary, reference, notes}.
func BuildEventDossier(e model.Event, runtime *hooks.Runtime) EventDossier {
	beforeCtx := hooks.NewContext(hooks.BeforeDossierBuild)
	beforeCtx.Data["id"] = string(e.Id)
	beforeCtx = runtime.Dispatch(beforeCtx)
	if beforeCtx.Abort {
		return EventDossier{Id: e.Id, SchemaVersion: SchemaVersion, Aborted: true}
	}

	d := EventDossier{
		Id:                       e.Id,
		Label:                    e.Label,
		Participants:             e.Participants,
		Accounts:                 e.Accounts,
		AccountConflicts:         make(map[string]map[string]string),
		AccountConflictSummaries: make(map[string]conflict.Summary),
		Parallels:                e.Parallels,
		Citations:                e.Citations,
		TextualVariants:          e.TextualVariants,
		SchemaVersion:            SchemaVersion,
	}

	claimList := claims.BuildEventClaims(e)
	conflicts := conflict.Detect(claimList, runtime)
	d.ClaimGraph = ClaimGraph{Claims: claimList, Conflicts: conflicts}

	accountFields := map[string]bool{"summary": true, "reference": true, "notes": true}
	for _, cs := range conflicts {
		if !accountFields[cs.Field] {
			continue
		}
		d.AccountConflictSummaries[cs.Field] = cs
		d.AccountConflicts[cs.Field] = cs.Sources
	}

	enrichCtx := hooks.NewContext(hooks.DossierEnrich)
	enrichCtx.Data["id"] = string(e.Id)
	enrichCtx.Data["dossier_kind"] = "event"
	runtime.Dispatch(enrichCtx)

	afterCtx := hooks.NewContext(hooks.AfterDossierBuild)
	afterCtx.Data["id"] = string(e.Id)
	runtime.Dispatch(afterCtx)

	return d
}
