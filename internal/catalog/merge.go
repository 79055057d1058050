package catalog

// MergeSchemas folds several stored schemas for one bet type into one.
//
// Dropdowns win: their option lists are unioned in first-seen order with duplicates
// removed. Without any dropdown the first text schema is used, and with no schemas
// at all the result is the default free-text input.
func MergeSchemas(schemas []Schema) Schema {
	var (
		options  []string
		seen     = make(map[string]struct{})
		dropdown bool
		text     *Schema
	)
	for i := range schemas {
		s := schemas[i]
		if s.Kind == KindDropdown {
			dropdown = true
			for _, opt := range s.Options {
				if _, dup := seen[opt]; dup {
					continue
				}
				seen[opt] = struct{}{}
				options = append(options, opt)
			}
			continue
		}
		if text == nil {
			text = &s
		}
	}

	switch {
	case dropdown:
		return Dropdown(options...)
	case text != nil:
		return normalize(*text)
	default:
		return Text(DefaultPlaceholder)
	}
}
