package transcript

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// SetupFileName is the name interactive setups are saved under
func SetupFileName(t time.Time) string {
	return fmt.Sprintf("config_%d.yaml", t.Unix())
}

// SaveSetup writes the players chosen in an interactive setup to dir as a
// config file that can be passed back with --config. It returns the path.
func SaveSetup(fs afero.Fs, dir string, players [2]core.PlayerConfig, t time.Time) (string, error) {
	if err := core.ValidatePlayers(players); err != nil {
		return "", err
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create setup directory: %w", err)
	}

	entries := make([]map[string]interface{}, 0, len(players))
	for _, p := range players {
		entries = append(entries, map[string]interface{}{
			"name":  p.Name,
			"kind":  p.Kind.String(),
			"token": p.Token.String(),
		})
	}

	v := viper.New()
	v.SetFs(fs)
	v.Set("players", entries)

	path := filepath.Join(dir, SetupFileName(t))
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to save setup: %w", err)
	}
	return path, nil
}
