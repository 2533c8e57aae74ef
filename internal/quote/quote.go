// Package quote holds the motivational quotes shown on the dashboard.
package quote

// Quote is a single line of text with its attribution.
type Quote struct {
	Text   string
	Author string
}

// Defaults is the built-in rotation.
var Defaults = []Quote{
	{Text: "Discipline is choosing between what you want now and what you want most.", Author: "Abraham Lincoln"},
	{Text: "We are what we repeatedly do. Excellence, then, is not an act, but a habit.", Author: "Will Durant"},
	{Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
	{Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
	{Text: "Small daily improvements are the key to staggering long-term results.", Author: "Robin Sharma"},
	{Text: "Success is the sum of small efforts, repeated day in and day out.", Author: "Robert Collier"},
	{Text: "You don't have to be great to start, but you have to start to be great.", Author: "Zig Ziglar"},
	{Text: "First, solve the problem. Then, write the code.", Author: "John Johnson"},
}

// Rotator cycles through a fixed list of quotes.
type Rotator struct {
	quotes []Quote
	index  int
}

// NewRotator returns a Rotator over quotes, starting at the first one.
func NewRotator(quotes []Quote) *Rotator {
	return &Rotator{quotes: quotes}
}

// Current returns the quote at the current index. ok is false when the list
// is empty.
func (r *Rotator) Current() (q Quote, ok bool) {
	if len(r.quotes) == 0 {
		return Quote{}, false
	}
	return r.quotes[r.index], true
}

// Next advances the index, wrapping at the end of the list, and returns the
// new current quote.
func (r *Rotator) Next() (Quote, bool) {
	if len(r.quotes) == 0 {
		return Quote{}, false
	}
	r.index = (r.index + 1) % len(r.quotes)
	return r.quotes[r.index], true
}

// Index returns the current position in the list.
func (r *Rotator) Index() int {
	return r.index
}
