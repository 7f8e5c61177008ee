// Package countries holds the nationality list and fills a select with it.
package countries

import (
	"errors"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/pagekit/internal/dom"
)

// Placeholder labels the empty leading option.
const Placeholder = "Select nationality"

// ErrNoContainer is returned by Populate when the options container is not
// in the document.
var ErrNoContainer = errors.New("countries: options container not found")

// Names returns a copy of the country list in display order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Populate replaces the children of the container matched by selector with a
// placeholder option of empty value followed by one option per name. It
// returns the number of options written.
func Populate(doc dom.Document, selector, placeholder string, list []string) (int, error) {
	container := doc.Query(selector)
	if container == nil {
		return 0, ErrNoContainer
	}
	if err := container.Clear(); err != nil {
		return 0, err
	}
	if placeholder == "" {
		placeholder = Placeholder
	}
	if err := appendOption(doc, container, "", placeholder); err != nil {
		return 0, err
	}
	written := 1
	for _, name := range list {
		if err := appendOption(doc, container, name, name); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func appendOption(doc dom.Document, container dom.Node, value, label string) error {
	opt := doc.CreateElement("div")
	for _, err := range []error{
		opt.SetAttr("class", "option"),
		opt.SetAttr("role", "option"),
		opt.SetAttr("data-value", value),
		opt.SetText(label),
	} {
		if err != nil {
			return err
		}
	}
	return container.AppendChild(opt)
}

// Search returns the names matching query as a case- and accent-insensitive
// subsequence, in list order. Substring matches are a subset of these. An
// empty query returns the whole list.
func Search(list []string, query string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]string(nil), list...)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, list)
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	out := make([]string, 0, len(matches))
	for idx, name := range list {
		if _, ok := matches[idx]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Best returns the index of the closest name for query: an exact match, then
// a prefix match, then the smallest fuzzy distance. It returns -1 when
// nothing matches.
func Best(list []string, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(list) == 0 {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i, name := range list {
		if strings.EqualFold(name, trimmed) {
			return i
		}
	}
	for i, name := range list {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, list)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
