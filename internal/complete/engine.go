package complete

import (
	"fmt"
	"strings"

	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/expr"
	"github.com/aldertree/rolo/internal/ui"
)

// Candidate is one completion candidate. Mark is the rune offset
// immediately after the matched token, recorded only when it falls before
// the end of the text; -1 means no annotation.
type Candidate struct {
	Text string
	Meta string // the email address behind a mailbox candidate, if any
	Mark int
}

// Result is the outcome of a completion request.
type Result struct {
	Done       bool   // the token resolved to a final expansion
	Exact      bool   // the token already named a candidate exactly
	Text       string // expansion, or the merged common form, or the input
	Candidates []Candidate
}

// Engine performs completion over a record set. Configuration is set once
// and read many times.
type Engine struct {
	GroupMarker string // prefix selecting tag-group completion
	ExprMarker  string // prefix selecting expression completion
	IgnoreCase  bool
	EmailProps  []string         // properties scanned for addresses
	Email       contact.Category // category used for default addresses
	IgnoreProp  string           // per-record list of addresses to skip
}

// AllMatches returns every candidate with a boundary match for the token,
// annotated for highlighting.
func (e *Engine) AllMatches(token string, cands []Candidate) []Candidate {
	var out []Candidate
	for _, c := range cands {
		_, end, ok := BoundaryMatch(token, c.Text, e.IgnoreCase)
		if !ok {
			continue
		}
		c.Mark = -1
		if end < len([]rune(c.Text)) {
			c.Mark = end
		}
		out = append(out, c)
	}
	return out
}

// Complete dispatches on the token's marker prefix: group completion,
// expression completion, or name completion.
func (e *Engine) Complete(token string, recs []contact.Record) (Result, error) {
	switch {
	case e.GroupMarker != "" && strings.HasPrefix(token, e.GroupMarker):
		return e.completeGroup(token, recs)
	case e.ExprMarker != "" && strings.HasPrefix(token, e.ExprMarker):
		return e.completeExpr(token, recs)
	default:
		return e.completeName(token, recs), nil
	}
}

// completeGroup completes the token against the tag set of the current
// records. A unique tag expands to the comma-joined mailboxes of every
// record carrying it; zero or several matching tags stay unresolved so
// the caller keeps prompting.
func (e *Engine) completeGroup(token string, recs []contact.Record) (Result, error) {
	tagToken := strings.TrimPrefix(token, e.GroupMarker)
	tags := collectTags(recs)

	var matched []string
	for _, tag := range tags {
		if _, _, ok := BoundaryMatch(tagToken, tag, e.IgnoreCase); ok {
			matched = append(matched, tag)
		}
	}

	target := ""
	switch {
	case len(matched) == 1:
		target = matched[0]
	default:
		// Several tags match; an exact tag still resolves.
		for _, tag := range matched {
			if equalFold(tag, tagToken, e.IgnoreCase) {
				target = tag
				break
			}
		}
	}

	if target == "" {
		res := Result{Text: token}
		if merged, status := TryComplete(tagToken, tags, e.IgnoreCase); status == StatusMerged {
			res.Text = e.GroupMarker + merged
		}
		for _, tag := range matched {
			res.Candidates = append(res.Candidates, Candidate{Text: e.GroupMarker + tag, Mark: -1})
		}
		return res, nil
	}

	var mailboxes []string
	for _, r := range recs {
		if !r.HasTag(target) {
			continue
		}
		addr, ok := e.Email.DefaultValue(r)
		if !ok {
			continue
		}
		mailboxes = append(mailboxes, contact.FormatMailbox(r.Name, addr))
	}
	return Result{Done: true, Text: strings.Join(mailboxes, ", ")}, nil
}

// completeExpr evaluates the token as a boolean tag/property filter and
// expands to the comma-joined mailboxes of every matching record.
func (e *Engine) completeExpr(token string, recs []contact.Record) (Result, error) {
	src := strings.TrimPrefix(token, e.ExprMarker)
	filter, err := expr.Parse(src)
	if err != nil {
		return Result{}, fmt.Errorf("invalid filter expression %q: %w", src, err)
	}

	var mailboxes []string
	for _, r := range recs {
		if !filter.Match(r) {
			continue
		}
		addr, ok := e.Email.DefaultValue(r)
		if !ok {
			continue
		}
		mailboxes = append(mailboxes, contact.FormatMailbox(r.Name, addr))
	}
	return Result{Done: true, Text: strings.Join(mailboxes, ", ")}, nil
}

// completeName matches the token against every mailbox derived from the
// records: one candidate per address per contact. Records without any
// address contribute nothing.
func (e *Engine) completeName(token string, recs []contact.Record) Result {
	var cands []Candidate
	for _, r := range recs {
		for _, addr := range r.Emails(e.EmailProps, e.IgnoreProp) {
			cands = append(cands, Candidate{Text: contact.FormatMailbox(r.Name, addr), Meta: addr})
		}
	}

	matched := e.AllMatches(token, cands)
	texts := make([]string, len(matched))
	for i, c := range matched {
		texts[i] = c.Text
	}

	merged, status := TryComplete(token, texts, e.IgnoreCase)
	res := Result{Candidates: matched, Text: token}
	switch status {
	case StatusExact:
		res.Done = true
		res.Exact = true
		res.Text = merged
	case StatusMerged:
		res.Text = merged
	}
	return res
}

// Highlight renders a candidate with its post-match position marked: bold
// normally, underline when the position holds a space (bold is invisible
// on whitespace in the target medium).
func Highlight(c Candidate) string {
	runes := []rune(c.Text)
	if c.Mark < 0 || c.Mark >= len(runes) {
		return c.Text
	}
	marked := string(runes[c.Mark])
	style := ui.Bold
	if marked == " " {
		style = ui.Underline
	}
	return string(runes[:c.Mark]) + style.Render(marked) + string(runes[c.Mark+1:])
}

// collectTags returns the unique tags across the record set, in first-seen
// order.
func collectTags(recs []contact.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range recs {
		for _, tag := range r.Tags() {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

func equalFold(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}
