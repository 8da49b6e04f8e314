package nativeext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var sourceExtensions = []string{".cxx", ".cpp", ".cc", ".c"}

// ExtensionDescriptor is the compiled-module specification handed to the
// packaging backend. It is created once per run and never mutated after.
type ExtensionDescriptor struct {
	Name        string   `yaml:"name"`
	Sources     []string `yaml:"sources"`
	CompileArgs []string `yaml:"extra_compile_args"`
	LinkArgs    []string `yaml:"extra_link_args"`
}

// NewExtensionDescriptor assembles a descriptor from a module name, its
// sources and resolved flags. All slices are copied.
func NewExtensionDescriptor(name string, sources []string, flags *FlagSet) (*ExtensionDescriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty module name", ErrInvalidDescriptor)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: %s has no sources", ErrInvalidDescriptor, name)
	}
	for _, src := range sources {
		if !MatchesExtension(src, sourceExtensions...) {
			return nil, fmt.Errorf("%w: %s is not a C/C++ source", ErrInvalidDescriptor, src)
		}
	}
	if flags == nil {
		return nil, fmt.Errorf("%w: %s has no resolved flags", ErrInvalidDescriptor, name)
	}

	flags = flags.Clone()
	return &ExtensionDescriptor{
		Name:        name,
		Sources:     append([]string{}, sources...),
		CompileArgs: flags.Compile,
		LinkArgs:    flags.Link,
	}, nil
}

// ModulePath converts the dotted module name into a relative path without suffix.
//
//	sentencepiece._sentencepiece -> sentencepiece/_sentencepiece
func (d *ExtensionDescriptor) ModulePath() string {
	return filepath.Join(strings.Split(d.Name, ".")...)
}

// PackageInfo is the package metadata carried alongside the extension.
type PackageInfo struct {
	Name                   string `yaml:"name"`
	Version                string `yaml:"version"`
	LongDescription        string `yaml:"long_description,omitempty"`
	LongDescriptionContent string `yaml:"long_description_content_type,omitempty"`
}

// Manifest is everything the packaging backend needs, serialized as YAML.
type Manifest struct {
	Package      PackageInfo          `yaml:"package"`
	Extension    *ExtensionDescriptor `yaml:"extension"`
	Strategy     string               `yaml:"strategy"`
	Architecture ArchitectureTag      `yaml:"architecture,omitempty"`
	Root         string               `yaml:"root"`
	Libraries    []string             `yaml:"libraries"`
	FallbackUsed bool                 `yaml:"fallback_used"`
}

// NewManifest combines package metadata, a descriptor and its resolve result.
func NewManifest(pkg PackageInfo, desc *ExtensionDescriptor, result *ResolveResult) *Manifest {
	return &Manifest{
		Package:      pkg,
		Extension:    desc,
		Strategy:     result.Strategy,
		Architecture: result.Architecture,
		Root:         result.Root,
		Libraries:    append([]string{}, result.Libraries...),
		FallbackUsed: result.FallbackUsed,
	}
}

// Marshal renders the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// WriteManifest writes the manifest to path, creating parent directories.
func WriteManifest(path string, m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}

// ReadLongDescription reads the README used as the package's long description.
// A missing README yields an empty description.
func ReadLongDescription(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading long description: %w", err)
	}
	return string(data), nil
}

// PackageMetadata collects the package metadata described by config.
//
// When the version file cannot be read but the CI ref variable is set,
// the ref is used as the version, as it is for the bundled build.
func PackageMetadata(config *Config) (PackageInfo, error) {
	version, err := config.PackageVersion()
	if err != nil {
		ref := config.getenv(config.RefEnv)
		if ref == "" {
			return PackageInfo{}, err
		}
		config.logger().Warn().Err(err).Str("ref", ref).Msg("version file unreadable, using CI ref as version")
		version = ref
	}

	readme, err := ReadLongDescription(config.ReadmeFile)
	if err != nil {
		return PackageInfo{}, err
	}

	info := PackageInfo{
		Name:            config.PackageName,
		Version:         version,
		LongDescription: readme,
	}
	if readme != "" {
		info.LongDescriptionContent = "text/markdown"
	}
	return info, nil
}
