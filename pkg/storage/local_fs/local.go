package local_fs

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/remote"`
	CustomPath string `yaml:"custom-path"`
}

// LocalFS stores objects as files below SavePath/CustomPath
// LocalFS 以文件形式保存对象
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf == nil || conf.SavePath == "" {
		return nil, errors.New("local_fs: save path is required")
	}
	return &LocalFS{Config: conf}, nil
}

func (p *LocalFS) root() string {
	return filepath.Join(p.Config.SavePath, filepath.FromSlash(p.Config.CustomPath))
}

func (p *LocalFS) filePath(key string) string {
	return filepath.Join(p.root(), filepath.FromSlash(path.Clean("/"+key)))
}

func (p *LocalFS) Put(_ context.Context, key string, content []byte) error {
	dst := p.filePath(key)
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return errors.Wrap(err, "local_fs")
	}

	// 先写临时文件再改名，避免读到半截内容
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return errors.Wrap(err, "local_fs")
	}
	if err := os.Rename(tmp, dst); err != nil {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}

func (p *LocalFS) Get(_ context.Context, key string) ([]byte, error) {
	content, err := os.ReadFile(p.filePath(key))
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return content, nil
}

func (p *LocalFS) List(ctx context.Context, prefix string) ([]string, error) {
	root := p.root()
	dir := p.filePath(prefix)

	var keys []string
	err := filepath.WalkDir(dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || strings.HasSuffix(name, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	sort.Strings(keys)
	return keys, nil
}
