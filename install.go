package nativeext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var nativeLibraryExtensions = map[string]struct{}{
	".so":     {},
	".pyd":    {},
	".dll":    {},
	".dylib":  {},
	".bundle": {},
}

// InstallExtension copies compiled modules into every configured destination
// directory, at the path implied by the dotted module name. It returns the
// installed paths, primary destination first.
//
//	build/ext/sentencepiece/_sentencepiece.so -> src/sentencepiece/_sentencepiece.so
func InstallExtension(config *Config, desc *ExtensionDescriptor, built []string) ([]string, error) {
	dests := uniqueStrings(config.Compiler.DestDirs)
	if len(dests) == 0 || len(built) == 0 {
		return nil, nil
	}

	relDir := safeRelativePath(filepath.Dir(desc.ModulePath()))

	var installed []string
	for _, srcPath := range built {
		if !isNativeLibrary(srcPath) {
			continue
		}
		if info, err := os.Stat(srcPath); err != nil || !info.Mode().IsRegular() {
			return installed, fmt.Errorf("built module %s is missing", srcPath)
		}

		for _, dest := range dests {
			target := filepath.Join(dest, relDir, filepath.Base(srcPath))
			if err := copyFile(srcPath, target); err != nil {
				return installed, fmt.Errorf("installing %s: %w", srcPath, err)
			}
			config.logger().Info().Str("src", srcPath).Str("dest", target).Msg("installed extension")
			installed = append(installed, filepath.ToSlash(target))
		}
	}

	return installed, nil
}

func isNativeLibrary(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := nativeLibraryExtensions[ext]
	return ok
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(destPath)
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func safeRelativePath(path string) string {
	clean := filepath.Clean(path)
	if clean == "." {
		return ""
	}
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return filepath.Base(clean)
	}
	return clean
}
