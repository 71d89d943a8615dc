package issues

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

var repoRefRE = regexp.MustCompile(`^([A-Za-z0-9\-._]+)/([A-Za-z0-9\-._]+)$`)

// RepoRef identifies a repository as owner/name.
type RepoRef struct {
	Org  string
	Repo string
}

func (r RepoRef) String() string {
	return fmt.Sprintf("%s/%s", r.Org, r.Repo)
}

func (r RepoRef) OrgAndRepo() (string, string) {
	return r.Org, r.Repo
}

// ParseRepoRef parses "owner/name", the form GITHUB_REPOSITORY takes in
// GitHub Actions.
func ParseRepoRef(raw string) (RepoRef, error) {
	parts := repoRefRE.FindStringSubmatch(raw)
	if parts == nil {
		return RepoRef{}, errors.Errorf("expected owner/name, got %q", raw)
	}
	return RepoRef{Org: parts[1], Repo: parts[2]}, nil
}
