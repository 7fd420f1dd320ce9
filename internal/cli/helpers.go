package cli

import (
	"fmt"
	"regexp"

	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/query"
)

// filterOptions compiles the shared --name/--tag/--prop flags.
func filterOptions(name, tag, prop string) (query.Options, error) {
	var opts query.Options
	var err error

	if name != "" {
		if opts.Name, err = regexp.Compile(name); err != nil {
			return opts, fmt.Errorf("invalid --name pattern: %w", err)
		}
	}
	if tag != "" {
		if opts.Tag, err = regexp.Compile(tag); err != nil {
			return opts, fmt.Errorf("invalid --tag pattern: %w", err)
		}
	}
	if prop != "" {
		key, pat, ok := cutPropFlag(prop)
		if !ok {
			return opts, fmt.Errorf("invalid --prop %q, expected KEY=PATTERN", prop)
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return opts, fmt.Errorf("invalid --prop pattern: %w", err)
		}
		opts.Prop = &query.PropPattern{Name: contact.NormalizeKey(key), Pattern: re}
	}
	return opts, nil
}

func cutPropFlag(s string) (key, pattern string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], i > 0
		}
	}
	return "", "", false
}

// filteredRecords runs the query engine over the current cache contents.
func filteredRecords(name, tag, prop string) ([]contact.Record, error) {
	opts, err := filterOptions(name, tag, prop)
	if err != nil {
		return nil, err
	}
	recs, err := db.Records()
	if err != nil {
		return nil, err
	}
	return query.Filter(recs, opts), nil
}
