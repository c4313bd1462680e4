package webdav

import (
	"context"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

func (w *WebDAV) remotePath(key string) string {
	return path.Join("/", w.Config.CustomPath, key)
}

func (w *WebDAV) Put(ctx context.Context, key string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	remote := w.remotePath(key)
	if err := w.Client.MkdirAll(path.Dir(remote), 0755); err != nil {
		return errors.Wrap(err, "webdav")
	}
	if err := w.Client.Write(remote, content, os.ModePerm); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}

func (w *WebDAV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := w.Client.Read(w.remotePath(key))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, errors.Wrapf(fs.ErrNotExist, "webdav: %s", key)
		}
		return nil, errors.Wrap(err, "webdav")
	}
	return content, nil
}

func (w *WebDAV) List(ctx context.Context, prefix string) ([]string, error) {
	root := w.remotePath("")
	var keys []string

	var walk func(dir string) error
	walk = func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := w.Client.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			full := path.Join(dir, e.Name())
			if e.IsDir() {
				if err := walk(full); err != nil {
					return err
				}
				continue
			}
			keys = append(keys, strings.TrimPrefix(strings.TrimPrefix(full, root), "/"))
		}
		return nil
	}

	if err := walk(w.remotePath(prefix)); err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "webdav")
	}
	sort.Strings(keys)
	return keys, nil
}
