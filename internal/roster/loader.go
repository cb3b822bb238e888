package roster

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/RoadWing/types"
)

// teamFile is the on-disk shape of a team roster file.
type teamFile struct {
	Members []teamFileMember `yaml:"members"`
}

type teamFileMember struct {
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Role       string   `yaml:"role"`
	Skills     []string `yaml:"skills"`
	LoadFactor float64  `yaml:"load_factor"`
}

// LoadTeamFile reads a YAML team roster from fs. Entries without an email are
// rejected; a missing load factor defaults to full-time.
func LoadTeamFile(fs afero.Fs, path string) ([]types.TeamMemberInput, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read team file %s: %w", path, err)
	}

	var tf teamFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse team file %s: %w", path, err)
	}
	if len(tf.Members) == 0 {
		return nil, fmt.Errorf("team file %s has no members", path)
	}

	members := make([]types.TeamMemberInput, 0, len(tf.Members))
	for i, m := range tf.Members {
		email := strings.TrimSpace(m.Email)
		if email == "" {
			return nil, fmt.Errorf("team file %s: member %d has no email", path, i)
		}
		lf := m.LoadFactor
		if lf <= 0 || lf > 1 {
			lf = 1.0
		}
		members = append(members, types.TeamMemberInput{
			Name:       strings.TrimSpace(m.Name),
			Email:      email,
			Role:       strings.TrimSpace(m.Role),
			Skills:     m.Skills,
			LoadFactor: lf,
		})
	}
	return members, nil
}
