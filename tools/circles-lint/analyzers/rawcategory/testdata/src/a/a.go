package a

import "strings"

type Event struct {
	Category     string
	MainCategory string
	City         string
}

func bad(e *Event) bool {
	if e.Category == "sports" { // want "stored Category compared to a literal"
		return true
	}
	if "talkThink" != e.MainCategory { // want "stored MainCategory compared to a literal"
		return false
	}
	return strings.EqualFold(e.Category, "Food & Drink") // want "stored Category compared to a literal"
}

func good(e *Event, resolved string) bool {
	if e.MainCategory != "" {
		return resolved == "moveBreathe"
	}
	return e.City == "Lyon" || e.Category == resolved
}
