package nativeext

import (
	"fmt"
	"io"
	"os"

	"github.com/phuslu/log"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the project directory when no path is given.
const DefaultConfigFile = "nativeext.yaml"

// Config contains configuration for resolving and building the extension.
//
// Source and output paths are relative to the project directory, which is
// the working directory of the process. The version, CI ref and
// architecture override are all reached through this value.
type Config struct {
	// Extension
	PackageName string   `yaml:"package_name"`
	ModuleName  string   `yaml:"module_name"` // Dotted module name, e.g. sentencepiece._sentencepiece
	Sources     []string `yaml:"sources"`
	ReadmeFile  string   `yaml:"readme_file"`

	// Version
	VersionFile string `yaml:"version_file"`
	Version     string `yaml:"version"` // Explicit version, skips VersionFile
	RefEnv      string `yaml:"ref_env"` // CI ref variable overriding the version for the bundled build
	ArchEnv     string `yaml:"arch_env"`

	// POSIX pipeline
	Root           string   `yaml:"root"`
	BundledCommand []string `yaml:"bundled_command"` // Supports {{ref}} and {{root}}

	// Windows pipeline
	Windows WindowsConfig `yaml:"windows"`
	CMake   CMakeConfig   `yaml:"cmake"`

	// Packaging backend
	Compiler CompilerConfig `yaml:"compiler"`

	LogLevel string `yaml:"log_level"`

	Platform Platform            `yaml:"-"` // Host platform, overridable for dry runs
	Getenv   func(string) string `yaml:"-"` // Environment lookup, os.Getenv when nil
	Logger   *log.Logger         `yaml:"-"` // Diagnostics, discarded when nil
}

// WindowsConfig lists the prebuilt roots tried before the CMake fallback.
type WindowsConfig struct {
	Candidates   []string `yaml:"candidates"`    // Supports {{arch}}
	FallbackRoot string   `yaml:"fallback_root"` // Re-queried after the CMake install
}

// CMakeConfig drives the Windows from-source fallback.
type CMakeConfig struct {
	SourceDir     string   `yaml:"source_dir"`
	BuildDir      string   `yaml:"build_dir"`
	InstallPrefix string   `yaml:"install_prefix"`
	SharedOption  string   `yaml:"shared_option"` // CMake option turned OFF to force static libraries
	BuildType     string   `yaml:"build_type"`
	Parallel      int      `yaml:"parallel"`
	ExtraArgs     []string `yaml:"extra_args"`
}

// CompilerConfig drives the packaging backend that compiles the descriptor.
type CompilerConfig struct {
	Command   string   `yaml:"command"` // Defaults to $CXX, then c++ (cl on Windows)
	ExtraArgs []string `yaml:"extra_args"`
	OutputDir string   `yaml:"output_dir"`
	Suffix    string   `yaml:"suffix"` // Defaults to .so (.pyd on Windows)
	DestDirs  []string `yaml:"dest_dirs"`
}

// DefaultConfig returns the configuration matching the sentencepiece layout.
func DefaultConfig() *Config {
	return &Config{
		PackageName: "sentencepiece",
		ModuleName:  "sentencepiece._sentencepiece",
		Sources:     []string{"src/sentencepiece/sentencepiece_wrap.cxx"},
		ReadmeFile:  "README.md",
		VersionFile: "src/sentencepiece/_version.py",
		RefEnv:      "GITHUB_REF_NAME",
		ArchEnv:     "PYTHON_ARCH",

		Root:           "./build/root",
		BundledCommand: []string{"./build_bundled.sh", "{{ref}}"},

		Windows: WindowsConfig{
			Candidates: []string{
				"../build/root_{{arch}}",
				"../build/root",
			},
			FallbackRoot: "./build/root",
		},
		CMake: CMakeConfig{
			SourceDir:     "sentencepiece",
			BuildDir:      "build",
			InstallPrefix: `build\root`,
			SharedOption:  "SPM_ENABLE_SHARED",
			BuildType:     "Release",
			Parallel:      8,
		},
		Compiler: CompilerConfig{
			OutputDir: "build/ext",
			DestDirs:  []string{"src"},
		},

		LogLevel: "info",
		Platform: HostPlatform(),
	}
}

// LoadConfig loads configuration from path on top of DefaultConfig.
//
// An empty path means DefaultConfigFile. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func (c *Config) getenv(key string) string {
	if key == "" {
		return ""
	}
	if c.Getenv != nil {
		return c.Getenv(key)
	}
	return os.Getenv(key)
}

func (c *Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

var discardLogger = &log.Logger{Writer: log.IOWriter{Writer: io.Discard}}

// PackageVersion returns the explicit version or the one in VersionFile.
func (c *Config) PackageVersion() (string, error) {
	if c.Version != "" {
		return c.Version, nil
	}
	return ReadVersionFile(c.VersionFile)
}

// BuildRef returns the ref handed to the bundled build: the CI ref variable
// when set, the package version otherwise.
func (c *Config) BuildRef() (string, error) {
	override := c.getenv(c.RefEnv)

	var version string
	if override == "" {
		var err error
		if version, err = c.PackageVersion(); err != nil {
			return "", err
		}
	}

	return ResolveVersion(version, override), nil
}

// Architecture detects the Windows target architecture for this config.
func (c *Config) Architecture() ArchitectureTag {
	return DetectArchitecture(c.Platform.PointerWidth, c.Platform.Machine, c.getenv(c.ArchEnv))
}
