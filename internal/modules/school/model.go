// Package school proxies the campus information system: meal menus and
// class timetables. The upstream is an external HTTP API; this module adds
// authentication, input validation, and error mapping, but never caches or
// rewrites the payloads beyond reshaping them into our JSON.
package school

// Meal is one meal service on a given date.
type Meal struct {
	Date     string   `json:"date"`    // YYYY-MM-DD
	Service  string   `json:"service"` // breakfast, lunch, dinner
	Dishes   []string `json:"dishes"`
	Calories string   `json:"calories,omitempty"`
}

// TimetableEntry is one scheduled lesson.
type TimetableEntry struct {
	Weekday int    `json:"weekday"` // 1 = Monday .. 5 = Friday
	Period  int    `json:"period"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher,omitempty"`
}
