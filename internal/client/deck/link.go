package deck

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gophslides/internal/common"
)

// Link is a parsed share link. EditSecret is empty for view links.
type Link struct {
	Origin     string
	PublicID   string
	EditSecret string
	KeyToken   string
}

// CanEdit reports whether the link grants edit access.
func (l *Link) CanEdit() bool {
	return l.EditSecret != ""
}

// View returns the read-only form of l.
func (l *Link) View() string {
	return BuildViewLink(l.Origin, l.PublicID, l.KeyToken)
}

// String renders l in the form it was shared in.
func (l *Link) String() string {
	if l.CanEdit() {
		return BuildEditLink(l.Origin, l.PublicID, l.EditSecret, l.KeyToken)
	}
	return l.View()
}

// BuildViewLink renders {origin}/p/{publicID}/h#{key}.
func BuildViewLink(origin, publicID, key string) string {
	return fmt.Sprintf("%s/p/%s/h#%s", strings.TrimRight(origin, "/"), publicID, key)
}

// BuildEditLink renders {origin}/p/{publicID}/e/{secret}/h#{key}.
func BuildEditLink(origin, publicID, secret, key string) string {
	return fmt.Sprintf("%s/p/%s/e/%s/h#%s", strings.TrimRight(origin, "/"), publicID, secret, key)
}

// ParseLink accepts view and edit links, optionally under the /present or
// /print prefixes. A link without a key fragment yields common.ErrMissingKey,
// anything else that does not match yields common.ErrInvalidLink.
func ParseLink(raw string) (*Link, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidLink, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) > 0 && (parts[0] == "present" || parts[0] == "print") {
		parts = parts[1:]
	}

	link := &Link{}
	switch {
	case len(parts) == 3 && parts[0] == "p" && parts[2] == "h":
		link.PublicID = parts[1]
	case len(parts) == 5 && parts[0] == "p" && parts[2] == "e" && parts[4] == "h":
		link.PublicID = parts[1]
		link.EditSecret = parts[3]
		if link.EditSecret == "" {
			return nil, fmt.Errorf("%w: empty edit secret", common.ErrInvalidLink)
		}
	default:
		return nil, fmt.Errorf("%w: unexpected path %q", common.ErrInvalidLink, u.Path)
	}
	if link.PublicID == "" {
		return nil, fmt.Errorf("%w: empty presentation id", common.ErrInvalidLink)
	}

	if u.Fragment == "" {
		return nil, common.ErrMissingKey
	}
	link.KeyToken = u.Fragment

	if u.Scheme != "" && u.Host != "" {
		link.Origin = u.Scheme + "://" + u.Host
	}

	return link, nil
}
