// Package hooks implements the lifecycle Hook Runtime (§4.8): a
// priority-ordered interposition mechanism at named canonical
// boundaries, with isolated handler failures and per-point abort
// contracts (§7).
package hooks

// Point names one of the 31 canonical hook points (§4.8.1).
type Point string

const (
	BeforeCharacterLoad Point = "before_character_load"
	AfterCharacterLoad  Point = "after_character_load"
	BeforeCharacterSave Point = "before_character_save"
	AfterCharacterSave  Point = "after_character_save"
	BeforeEventLoad     Point = "before_event_load"
	AfterEventLoad      Point = "after_event_load"
	BeforeEventSave     Point = "before_event_save"
	AfterEventSave      Point = "after_event_save"

	BeforeValidation Point = "before_validation"
	AfterValidation  Point = "after_validation"
	ValidationError  Point = "validation_error"

	BeforeQuery Point = "before_query"
	AfterQuery  Point = "after_query"
	CacheHit    Point = "cache_hit"
	CacheMiss   Point = "cache_miss"

	BeforeSearch        Point = "before_search"
	AfterSearch         Point = "after_search"
	SearchResultFilter  Point = "search_result_filter"
	SearchResultRank    Point = "search_result_rank"

	BeforeDossierBuild Point = "before_dossier_build"
	DossierEnrich      Point = "dossier_enrich"
	AfterDossierBuild  Point = "after_dossier_build"

	BeforeExport       Point = "before_export"
	AfterExport        Point = "after_export"
	ExportFormatResolve Point = "export_format_resolve"

	BeforeConflictDetection Point = "before_conflict_detection"
	AfterConflictDetection  Point = "after_conflict_detection"
	ConflictSeverityScore   Point = "conflict_severity_score"

	Startup      Point = "startup"
	Shutdown     Point = "shutdown"
	ConfigChange Point = "config_change"
)

// RequiredPoints are the hook points the core is obligated to invoke
// (§4.8.4); every other point is an optional observation point an
// embedder may still register against. ExportFormatResolve is listed,
// but this module has no export operation and nothing in it fires that
// point.
var RequiredPoints = map[Point]bool{
	BeforeCharacterLoad: true, AfterCharacterLoad: true,
	BeforeCharacterSave: true, AfterCharacterSave: true,
	BeforeEventLoad: true, AfterEventLoad: true,
	BeforeEventSave: true, AfterEventSave: true,
	BeforeValidation: true, AfterValidation: true,
	BeforeSearch: true, AfterSearch: true,
	BeforeDossierBuild: true, DossierEnrich: true, AfterDossierBuild: true,
	BeforeConflictDetection: true, AfterConflictDetection: true,
	ExportFormatResolve: true,
}
