package tagger

// Vocabulary holds the keyword tables the tagger matches against.
// It is immutable configuration: construct one, pass it to New, and do
// not mutate it afterwards. Tests substitute smaller vocabularies.
type Vocabulary struct {
	// Tones maps a tone tag to the lowercase keywords that trigger it.
	// Evaluated in order; a tag fires when any keyword is a substring
	// of the lowercase input text.
	Tones []KeywordRule

	// Themes are matched as lowercase substrings of the text; the tag
	// itself is emitted on a hit.
	Themes []string

	// Professions maps a profession bucket to its trigger keywords.
	// Any single keyword hit qualifies the whole bucket.
	Professions []KeywordRule

	// SubjectProfessions is a coarse subject-to-profession map,
	// evaluated top to bottom against lowercase subject strings.
	SubjectProfessions []KeywordRule

	// ChildrenSubjects and YoungAdultSubjects are subject substrings
	// that emit the corresponding audience label.
	ChildrenSubjects   []string
	YoungAdultSubjects []string
}

// KeywordRule associates an output tag with the lowercase keywords that
// trigger it. Rules are evaluated in slice order so output order is
// deterministic and precedence is explicit.
type KeywordRule struct {
	Tag      string
	Keywords []string
}

// DefaultVocabulary returns the production keyword tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Tones: []KeywordRule{
			{Tag: "Humorous", Keywords: []string{"humorous", "hilarious", "funny", "comedy", "witty"}},
			{Tag: "Dark", Keywords: []string{"dark", "grim", "sinister"}},
			{Tag: "Lighthearted", Keywords: []string{"lighthearted", "light-hearted", "feel-good", "charming"}},
			{Tag: "Suspenseful", Keywords: []string{"suspense", "thriller", "gripping", "edge of your seat"}},
			{Tag: "Mysterious", Keywords: []string{"myster", "enigma", "puzzle", "secret"}},
			{Tag: "Romantic", Keywords: []string{"romance", "romantic", "love story"}},
			{Tag: "Uplifting", Keywords: []string{"uplifting", "hopeful", "inspiring", "heartening"}},
			{Tag: "Melancholic", Keywords: []string{"melanchol", "sorrow", "wistful", "elegiac"}},
			{Tag: "Gritty", Keywords: []string{"gritty", "brutal", "unflinching", "raw"}},
			{Tag: "Whimsical", Keywords: []string{"whimsical", "quirky", "fanciful", "playful"}},
			{Tag: "Tense", Keywords: []string{"tense", "taut", "nail-biting"}},
			{Tag: "Heartwarming", Keywords: []string{"heartwarming", "touching", "tender"}},
			{Tag: "Haunting", Keywords: []string{"haunting", "eerie", "ghostly", "chilling"}},
			{Tag: "Epic", Keywords: []string{"epic", "sweeping", "saga"}},
			{Tag: "Bleak", Keywords: []string{"bleak", "dystopi", "desolate"}},
			{Tag: "Thought-provoking", Keywords: []string{"thought-provoking", "philosophical", "meditation on"}},
			{Tag: "Adventurous", Keywords: []string{"adventur", "quest", "expedition", "daring"}},
			{Tag: "Nostalgic", Keywords: []string{"nostalgi", "bygone", "remembrance"}},
		},
		Themes: []string{
			"Love", "Friendship", "Family", "War", "Justice", "Identity",
			"Betrayal", "Redemption", "Survival", "Power", "Freedom",
			"Revenge", "Coming of Age", "Loss", "Hope", "Courage",
			"Sacrifice", "Mystery", "Adventure", "Faith", "Nature",
			"Technology", "Memory", "Ambition", "Grief", "Belonging",
		},
		Professions: []KeywordRule{
			{Tag: "Doctors", Keywords: []string{"doctor", "hospital", "surgeon", "medicine", "medical", "nurse", "patient", "clinic", "diagnosis", "physician"}},
			{Tag: "Lawyers", Keywords: []string{"lawyer", "attorney", "courtroom", "trial", "legal", "judge", "law firm", "verdict", "barrister", "defense counsel"}},
			{Tag: "Engineers", Keywords: []string{"engineer", "invention", "machine", "mechanical", "software", "circuit", "prototype", "blueprint", "robotics", "technical"}},
			{Tag: "Teachers", Keywords: []string{"teacher", "classroom", "school", "student", "professor", "lecture", "education", "academy", "tutor", "university"}},
			{Tag: "Scientists", Keywords: []string{"scientist", "laboratory", "experiment", "research", "physics", "chemistry", "biology", "discovery", "genome", "astronomy"}},
			{Tag: "Writers", Keywords: []string{"writer", "novelist", "journalist", "manuscript", "poet", "editor", "publishing", "newspaper", "memoir", "typewriter"}},
			{Tag: "Artists", Keywords: []string{"artist", "painter", "painting", "sculpture", "gallery", "canvas", "musician", "composer", "photographer", "designer"}},
			{Tag: "Entrepreneurs", Keywords: []string{"entrepreneur", "startup", "founder", "investor", "venture", "boardroom", "business empire", "tycoon", "merger", "stock market"}},
			{Tag: "Soldiers", Keywords: []string{"soldier", "military", "army", "battlefield", "regiment", "veteran", "combat", "navy", "marine", "platoon"}},
			{Tag: "Detectives", Keywords: []string{"detective", "investigator", "police", "crime scene", "forensic", "homicide", "precinct", "sleuth", "private eye", "inspector"}},
			{Tag: "Chefs", Keywords: []string{"chef", "kitchen", "restaurant", "recipe", "cooking", "culinary", "baker", "pastry", "menu", "gastronomy"}},
			{Tag: "Farmers", Keywords: []string{"farmer", "farm", "harvest", "ranch", "orchard", "crops", "livestock", "vineyard", "barn", "homestead"}},
		},
		SubjectProfessions: []KeywordRule{
			{Tag: "Doctors", Keywords: []string{"medicine", "medical"}},
			{Tag: "Lawyers", Keywords: []string{"law"}},
			{Tag: "Engineers", Keywords: []string{"engineering"}},
			{Tag: "Teachers", Keywords: []string{"education"}},
			{Tag: "Scientists", Keywords: []string{"science"}},
			{Tag: "Entrepreneurs", Keywords: []string{"business"}},
			{Tag: "Soldiers", Keywords: []string{"military"}},
			{Tag: "Artists", Keywords: []string{"art"}},
			{Tag: "Detectives", Keywords: []string{"true crime"}},
			{Tag: "Chefs", Keywords: []string{"cooking", "cookery"}},
			{Tag: "Farmers", Keywords: []string{"agriculture"}},
			{Tag: "Writers", Keywords: []string{"authorship", "journalism"}},
		},
		ChildrenSubjects:   []string{"juvenile", "children", "picture book"},
		YoungAdultSubjects: []string{"young adult", "teen", "ya fiction"},
	}
}
