package entities

// CanonicalCategories is the active category set, in display order.
var CanonicalCategories = []CategoryDefinition{
	{Key: CategoryTalkThink, Labels: Labels{EN: "Talk & Think", FR: "Échanger & Réfléchir"}},
	{Key: CategoryMoveBreathe, Labels: Labels{EN: "Move & Breathe", FR: "Bouger & Respirer"}},
	{Key: CategoryCreateMake, Labels: Labels{EN: "Create & Make", FR: "Créer & Fabriquer"}},
	{Key: CategoryTasteSavor, Labels: Labels{EN: "Taste & Savor", FR: "Goûter & Savourer"}},
	{Key: CategoryMeetConnect, Labels: Labels{EN: "Meet & Connect", FR: "Se rencontrer & Partager"}},
}

// TaxonomyGeneration identifies the schema generation an alias comes from.
type TaxonomyGeneration int

// Known taxonomy generations.
const (
	GenerationConfigured TaxonomyGeneration = iota // supplied at runtime by configuration
	GenerationLaunch                               // flat categories at launch
	GenerationFormats                              // format-based categories
	GenerationCircles                              // current set, older key spellings
)

// CategoryAlias maps a historical key or label to its canonical successor.
type CategoryAlias struct {
	Alias    string
	Category Category
	Since    TaxonomyGeneration
}

// LegacyCategoryAliases lists every known historical key and label.
// The list is append-only: entries are never removed or retargeted, new
// generations add rows at the end.
var LegacyCategoryAliases = []CategoryAlias{
	// Launch keys.
	{Alias: "social", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "networking", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "games", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "other", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "sports", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "outdoor", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "wellness", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "food", Category: CategoryTasteSavor, Since: GenerationLaunch},
	{Alias: "arts", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "music", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "sell_and_shop", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "learning", Category: CategoryTalkThink, Since: GenerationLaunch},
	{Alias: "tech", Category: CategoryTalkThink, Since: GenerationLaunch},

	// Launch labels.
	{Alias: "Social", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "Networking", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "Réseautage", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "Games", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "Jeux", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "Other", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "Autre", Category: CategoryMeetConnect, Since: GenerationLaunch},
	{Alias: "Sport", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "Sports & Fitness", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "Outdoor", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "Plein air", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "Wellness", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "Bien-être", Category: CategoryMoveBreathe, Since: GenerationLaunch},
	{Alias: "Food & Drink", Category: CategoryTasteSavor, Since: GenerationLaunch},
	{Alias: "Cuisine", Category: CategoryTasteSavor, Since: GenerationLaunch},
	{Alias: "Arts & Culture", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "Art & Culture", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "Music", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "Musique", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "Sell & Shop", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "Vendre & Acheter", Category: CategoryCreateMake, Since: GenerationLaunch},
	{Alias: "Learning", Category: CategoryTalkThink, Since: GenerationLaunch},
	{Alias: "Apprentissage", Category: CategoryTalkThink, Since: GenerationLaunch},

	// Format-based generation.
	{Alias: "discussions", Category: CategoryTalkThink, Since: GenerationFormats},
	{Alias: "workshops", Category: CategoryCreateMake, Since: GenerationFormats},
	{Alias: "activities", Category: CategoryMoveBreathe, Since: GenerationFormats},
	{Alias: "tastings", Category: CategoryTasteSavor, Since: GenerationFormats},
	{Alias: "gatherings", Category: CategoryMeetConnect, Since: GenerationFormats},
	{Alias: "Ateliers", Category: CategoryCreateMake, Since: GenerationFormats},
	{Alias: "Activités", Category: CategoryMoveBreathe, Since: GenerationFormats},
	{Alias: "Dégustations", Category: CategoryTasteSavor, Since: GenerationFormats},
	{Alias: "Rencontres", Category: CategoryMeetConnect, Since: GenerationFormats},

	// Current set, earlier spellings.
	{Alias: "talk_and_think", Category: CategoryTalkThink, Since: GenerationCircles},
	{Alias: "move_and_breathe", Category: CategoryMoveBreathe, Since: GenerationCircles},
	{Alias: "create_and_make", Category: CategoryCreateMake, Since: GenerationCircles},
	{Alias: "taste_and_savor", Category: CategoryTasteSavor, Since: GenerationCircles},
	{Alias: "taste_and_savour", Category: CategoryTasteSavor, Since: GenerationCircles},
	{Alias: "meet_and_connect", Category: CategoryMeetConnect, Since: GenerationCircles},
	{Alias: "Parler & Penser", Category: CategoryTalkThink, Since: GenerationCircles},
}
