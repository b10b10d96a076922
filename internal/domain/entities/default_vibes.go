package entities

// PresetVibes are the built-in vibes, grouped by category in display order.
// Order matters: it drives enumeration in pickers and snapshot tests.
var PresetVibes = []Vibe{
	preset(CategoryTalkThink, "deep_talks", "Deep talks", "Discussions profondes"),
	preset(CategoryTalkThink, "book_club", "Book club", "Club de lecture"),
	preset(CategoryTalkThink, "language_exchange", "Language exchange", "Échange linguistique"),
	preset(CategoryTalkThink, "philosophy_cafe", "Philosophy café", "Café philo"),
	preset(CategoryTalkThink, "tech_talks", "Tech talks", "Conférences tech"),

	preset(CategoryMoveBreathe, "yoga", "Yoga", "Yoga"),
	preset(CategoryMoveBreathe, "running_club", "Running club", "Club de course"),
	preset(CategoryMoveBreathe, "hiking", "Hiking", "Randonnée"),
	preset(CategoryMoveBreathe, "dance", "Dance", "Danse"),
	preset(CategoryMoveBreathe, "team_sports", "Team sports", "Sports d'équipe"),

	preset(CategoryCreateMake, "pottery", "Pottery", "Poterie"),
	preset(CategoryCreateMake, "painting", "Painting", "Peinture"),
	preset(CategoryCreateMake, "makers_market", "Makers market", "Marché de créateurs"),
	preset(CategoryCreateMake, "jam_session", "Jam session", "Bœuf musical"),
	preset(CategoryCreateMake, "crafts", "Crafts", "Artisanat"),

	preset(CategoryTasteSavor, "wine_tasting", "Wine tasting", "Dégustation de vin"),
	preset(CategoryTasteSavor, "cooking_class", "Cooking class", "Cours de cuisine"),
	preset(CategoryTasteSavor, "brunch", "Brunch", "Brunch"),
	preset(CategoryTasteSavor, "street_food", "Street food", "Cuisine de rue"),
	preset(CategoryTasteSavor, "potluck", "Potluck", "Repas partagé"),

	preset(CategoryMeetConnect, "live_local", "Live local", "Vivre local"),
	preset(CategoryMeetConnect, "newcomers", "Newcomers", "Nouveaux arrivants"),
	preset(CategoryMeetConnect, "board_games", "Board games", "Jeux de société"),
	preset(CategoryMeetConnect, "afterwork", "Afterwork", "Afterwork"),
	preset(CategoryMeetConnect, "volunteering", "Volunteering", "Bénévolat"),
}

// LegacyVibeCategories maps bare vibe keys written by earlier app versions
// to the category they imply. Append-only, like LegacyCategoryAliases.
var LegacyVibeCategories = map[string]Category{
	"intellectual": CategoryTalkThink,
	"curious":      CategoryTalkThink,
	"sporty":       CategoryMoveBreathe,
	"zen":          CategoryMoveBreathe,
	"outdoorsy":    CategoryMoveBreathe,
	"artsy":        CategoryCreateMake,
	"crafty":       CategoryCreateMake,
	"foodie":       CategoryTasteSavor,
	"gourmet":      CategoryTasteSavor,
	"chill":        CategoryMeetConnect,
	"party":        CategoryMeetConnect,
}

func preset(c Category, key, en, fr string) Vibe {
	return Vibe{Kind: VibePreset, Key: key, Labels: Labels{EN: en, FR: fr}, Category: c}
}

var presetIndex = func() map[string]Vibe {
	m := make(map[string]Vibe, len(PresetVibes))
	for _, v := range PresetVibes {
		m[v.Key] = v
	}
	return m
}()

// FindPresetVibe looks up a preset by its exact key.
func FindPresetVibe(key string) (Vibe, bool) {
	v, ok := presetIndex[key]
	return v, ok
}

// IsPresetVibeKey reports whether key names a built-in preset.
func IsPresetVibeKey(key string) bool {
	_, ok := presetIndex[key]
	return ok
}
