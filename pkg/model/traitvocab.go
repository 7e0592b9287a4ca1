package model

// TraitVocabulary is the recognized controlled vocabulary of trait keys
// (§3.1). Keys outside this set are permitted on ingestion but surface as
// warnings rather than errors.
var TraitVocabulary = map[string]bool{
	"christology": true, "eschatology": true, "soteriology": true,
	"pneumatology": true, "ecclesiology": true, "mission_focus": true,
	"teaching_emphasis": true, "ministry_location": true,
	"ministry_duration": true, "ministry_recipients": true,
	"miracles": true, "signs": true, "healings": true, "exorcisms": true,
	"nature_miracles": true, "conflicts": true, "opponents": true,
	"trial_details": true, "accusations": true, "death_resurrection": true,
	"passion_narrative": true, "crucifixion_details": true,
	"resurrection_details": true, "post_resurrection_appearances": true,
	"torah_stance": true, "halakha_interpretation": true,
	"purity_laws": true, "sabbath_observance": true,
	"temple_attitude": true, "messianic_claims": true,
	"divine_sonship": true, "prophetic_identity": true,
	"authority_claims": true, "discipleship_model": true,
	"family_relations": true, "gender_inclusivity": true,
	"social_justice": true, "parables": true,
	"apocalyptic_discourse": true, "wisdom_sayings": true,
	"pronouncement_stories": true, "controversy_stories": true,
	"jewish_context": true, "greco_roman_context": true,
	"political_stance": true, "economic_teaching": true,
	"portrayal": true, "character_development": true, "emotions": true,
	"virtues": true, "vices": true, "kingdom_of_god": true,
	"future_hope": true, "judgment_themes": true,
	"imminent_expectation": true, "realized_eschatology": true,
	"spirit_activity": true, "angelic_encounters": true,
	"demonic_opposition": true, "visions": true, "revelations": true,
	"ethical_teaching": true, "community_formation": true,
	"ritual_practices": true, "prayer_life": true,
	"table_fellowship": true,
}

// IsRecognizedTrait reports whether key belongs to TraitVocabulary.
// Unrecognized keys are not rejected; callers decide whether to warn.
func IsRecognizedTrait(key string) bool {
	return TraitVocabulary[key]
}
