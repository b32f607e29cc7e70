// Package volume discovers bindings mounted as a directory tree, one directory per binding.
//
// Two layouts are understood. The Kubernetes Service Binding layout:
//
//	$SERVICE_BINDING_ROOT/<name>/type
//	$SERVICE_BINDING_ROOT/<name>/provider
//	$SERVICE_BINDING_ROOT/<name>/<secret key>
//
// and the legacy Cloud Native Buildpacks layout:
//
//	$SERVICE_BINDING_ROOT/<name>/metadata/kind
//	$SERVICE_BINDING_ROOT/<name>/metadata/provider
//	$SERVICE_BINDING_ROOT/<name>/secret/<secret key>
package volume

import (
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
)

var log = logging.Logger("binding-volume")

const (
	metadataDir = "metadata"
	secretDir   = "secret"
	kindFile    = "kind"
)

// LoadDir loads the bindings below root. A missing root yields no bindings.
func LoadDir(root string) (*binding.Bindings, error) {
	if root == "" {
		log.Debug("No binding root configured")
		return binding.NewBindings()
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Binding root does not exist", "root", root)
			return binding.NewBindings()
		}
		return nil, errors.Wrapf(err, "could not access binding root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("binding root %s is not a directory", root)
	}
	return Load(os.DirFS(root))
}

// Load loads the bindings found at the top level of fsys, sorted by name.
// Directories without a type are skipped.
func Load(fsys fs.FS) (*binding.Bindings, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "could not list bindings")
	}

	var bindings []*binding.Binding
	for _, e := range entries {
		if hidden(e.Name()) || !isDir(fsys, ".", e) {
			continue
		}
		b, err := load(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		if b == nil {
			log.Warning("Skipping binding without type", "name", e.Name())
			continue
		}
		log.Debug("Discovered binding", "name", b.Name(), "kind", b.Kind())
		bindings = append(bindings, b)
	}
	return binding.NewBindings(bindings...)
}

func load(fsys fs.FS, name string) (*binding.Binding, error) {
	if exists(fsys, path.Join(name, metadataDir, kindFile)) {
		return loadLegacy(fsys, name)
	}

	secret, err := readFiles(fsys, name)
	if err != nil {
		return nil, err
	}
	kind := strings.TrimSpace(secret[binding.TypeKey])
	if kind == "" {
		return nil, nil
	}
	provider := strings.TrimSpace(secret[binding.ProviderKey])
	delete(secret, binding.TypeKey)
	delete(secret, binding.ProviderKey)
	return binding.New(name, kind, provider, secret), nil
}

func loadLegacy(fsys fs.FS, name string) (*binding.Binding, error) {
	metadata, err := readFiles(fsys, path.Join(name, metadataDir))
	if err != nil {
		return nil, err
	}
	secret := map[string]string{}
	if exists(fsys, path.Join(name, secretDir)) {
		if secret, err = readFiles(fsys, path.Join(name, secretDir)); err != nil {
			return nil, err
		}
	}
	kind := strings.TrimSpace(metadata[kindFile])
	if kind == "" {
		return nil, nil
	}
	return binding.New(name, kind, strings.TrimSpace(metadata[binding.ProviderKey]), secret), nil
}

// readFiles reads the regular, non hidden files of dir. Symbolic links, as created
// by Kubernetes volume projections, are followed.
func readFiles(fsys fs.FS, dir string) (map[string]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list %s", dir)
	}
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if hidden(e.Name()) || isDir(fsys, dir, e) {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", path.Join(dir, e.Name()))
		}
		files[e.Name()] = string(content)
	}
	return files, nil
}

func isDir(fsys fs.FS, dir string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(fsys, path.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}
