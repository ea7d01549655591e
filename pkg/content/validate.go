package content

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/vango-dev/folio/internal/errors"
)

var sectionIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Validate checks the content for problems that would break the page.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Owner.Name) == "" {
		return errors.New("F200").
			WithKey("content.owner.name").
			WithSuggestion("Set content.owner.name in folio.yaml")
	}

	seen := make(map[string]bool, len(c.Nav))
	for i, item := range c.Nav {
		key := fmt.Sprintf("content.nav[%d].section", i)
		if !sectionIDPattern.MatchString(item.Section) || !slices.Contains(SectionIDs, item.Section) {
			return errors.New("F202").
				WithKey(key).
				WithDetail(fmt.Sprintf("%q is not a page section", item.Section)).
				WithSuggestion("Use one of: " + strings.Join(SectionIDs, ", "))
		}
		if seen[item.Section] {
			return errors.New("F201").
				WithKey(key).
				WithDetail(fmt.Sprintf("%q is linked more than once", item.Section))
		}
		seen[item.Section] = true
	}

	return nil
}
