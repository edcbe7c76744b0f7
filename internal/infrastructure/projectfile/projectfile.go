// Package projectfile reads project configurations from YAML or JSON files.
//
// Module lists are given per role as a list rather than a role-keyed map,
// because role names are case-sensitive and map keys are not preserved:
//
//	projectName: Business Directory
//	enabledRoles: [admin, businessOwner, publicUser]
//	modules:
//	  - role: admin
//	    enabled: [businessListing, inquiry]
package projectfile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/langkawi/directory-access/internal/core/domain"
)

type fileConfig struct {
	ProjectName  string       `mapstructure:"projectName"`
	EnabledRoles []string     `mapstructure:"enabledRoles"`
	Modules      []roleModule `mapstructure:"modules"`
}

type roleModule struct {
	Role    string   `mapstructure:"role"`
	Enabled []string `mapstructure:"enabled"`
}

// Load reads the configuration at path. The format follows the extension
// (.yaml, .yml or .json). The result is not validated.
func Load(path string) (*domain.ProjectConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read project file %s: %w", filepath.Base(path), err)
	}
	return decode(v)
}

// Decode reads a configuration of the given format ("yaml" or "json") from r.
func Decode(r io.Reader, format string) (*domain.ProjectConfig, error) {
	v := viper.New()
	v.SetConfigType(strings.ToLower(format))
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read project config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*domain.ProjectConfig, error) {
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("decode project config: %w", err)
	}

	roles := make([]domain.Role, 0, len(fc.EnabledRoles))
	for _, r := range fc.EnabledRoles {
		roles = append(roles, domain.Role(r))
	}

	// An absent modules section stays nil so validation reports it.
	var modules map[domain.Role][]domain.Module
	if v.IsSet("modules") {
		modules = make(map[domain.Role][]domain.Module, len(fc.Modules))
		for _, rm := range fc.Modules {
			if rm.Role == "" {
				return nil, fmt.Errorf("decode project config: module entry without role")
			}
			if _, dup := modules[domain.Role(rm.Role)]; dup {
				return nil, fmt.Errorf("decode project config: duplicate module entry for role %q", rm.Role)
			}
			mods := make([]domain.Module, 0, len(rm.Enabled))
			for _, m := range rm.Enabled {
				mods = append(mods, domain.Module(m))
			}
			modules[domain.Role(rm.Role)] = mods
		}
	}

	return domain.NewProjectConfig(fc.ProjectName, roles, modules), nil
}
