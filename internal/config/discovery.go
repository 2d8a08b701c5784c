package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigFile is the environment variable that supplies a fallback
// configuration-file path when none is given on the command line.
const EnvConfigFile = "MESHWIRE_CONFIGURATION_FILE"

const configFileName = "meshwire.toml"

// DiscoveryPaths returns the ordered list of candidate configuration-file
// locations probed when neither an explicit path nor the environment variable
// is set: a per-user location first, then a system location.
func DiscoveryPaths() []string {
	if runtime.GOOS == "windows" {
		var paths []string
		if appData := os.Getenv("APPDATA"); appData != "" {
			paths = append(paths, filepath.Join(appData, "meshwire", configFileName))
		}
		if exe, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(exe), configFileName))
		}
		return paths
	}

	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "meshwire", configFileName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", "meshwire", configFileName))
	}
	paths = append(paths, filepath.Join("/etc", "meshwire", configFileName))
	return paths
}

// ResolveSource determines, once, which configuration file supplies option
// values beyond the command line. An explicit path (or one taken from
// MESHWIRE_CONFIGURATION_FILE) must be readable; failure there is fatal with
// no fallback. Otherwise the discovery paths are probed in order and the
// first existing file wins. When none exists, ResolveSource logs a warning
// and returns an empty path: resolution continues with command-line values
// and defaults alone.
func ResolveSource(explicit string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if explicit != "" {
		if err := checkReadable(explicit); err != nil {
			return "", err
		}
		logger.Info("reading configuration file", "path", explicit)
		return explicit, nil
	}

	if fromEnv := os.Getenv(EnvConfigFile); fromEnv != "" {
		if err := checkReadable(fromEnv); err != nil {
			return "", err
		}
		logger.Info("reading configuration file", "path", fromEnv, "source", EnvConfigFile)
		return fromEnv, nil
	}

	candidates := DiscoveryPaths()
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			logger.Info("reading configuration file", "path", path)
			return path, nil
		}
	}

	logger.Warn("no configuration file specified and none found; continuing with command-line values and defaults",
		"probed", candidates)
	return "", nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &FileUnreadableError{Path: path, Cause: err}
	}
	f.Close()
	return nil
}
