package types

// Page collection keys. Each key holds an independent tree of nodes.
const (
	KeySelfObservation = "gh_self_obs_pages_v1"
	KeyKnowledge       = "gh_learning_knowledge_v1"
	KeySkills          = "gh_learning_skills_v1"
)

// Keys owned by peripheral widgets. Folio never decodes these values but
// carries them through bulk export and import.
const (
	KeyProfile   = "gh_profile_v1"
	KeyTasks     = "gh_tasks_v3"
	KeyMemos     = "gh_memos_v1"
	KeyDayLogs   = "gh_daylogs_v2"
	KeyDayStatus = "gh_day_active_v1"
	KeyReports   = "gh_reports_v1"
)

// PageCollections lists the keys that hold node trees.
var PageCollections = []string{
	KeySelfObservation,
	KeyKnowledge,
	KeySkills,
}

// KnownKeys lists every key included in a bulk export, in export order.
var KnownKeys = []string{
	KeyProfile,
	KeyTasks,
	KeyMemos,
	KeyDayLogs,
	KeyDayStatus,
	KeyReports,
	KeySelfObservation,
	KeyKnowledge,
	KeySkills,
}

// collectionAliases maps short names accepted by the CLI to keys.
var collectionAliases = map[string]string{
	"self":      KeySelfObservation,
	"knowledge": KeyKnowledge,
	"skills":    KeySkills,
}

// ResolveCollection maps a short alias to its key. Unknown names are
// returned unchanged so callers can address arbitrary collections.
func ResolveCollection(name string) string {
	if key, ok := collectionAliases[name]; ok {
		return key
	}
	return name
}
