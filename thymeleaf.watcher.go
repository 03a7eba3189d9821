package thymeleaf

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher invalidates cached templates when files below a FileResolver
// root change. Directories created after the watcher started are watched too.
type FileWatcher struct {
	files   *FileResolver
	cache   *CachingResolver
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	closeOnce sync.Once
}

// NewFileWatcher starts watching every directory below files.Root. Call Watch
// to process events and Close to release the watcher.
func NewFileWatcher(files *FileResolver, cache *CachingResolver, logger *zap.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, NewConfigError(ErrMsgWatcherFailed, err)
	}

	fw := &FileWatcher{files: files, cache: cache, watcher: watcher, logger: logger}
	if err := fw.addTree(files.Root); err != nil {
		watcher.Close()
		return nil, NewConfigError(ErrMsgWatcherFailed, err)
	}

	logger.Debug(LogMsgWatcherStarted, zap.String(LogFieldPath, files.Root))
	return fw, nil
}

// Watch processes file events until ctx is done or the watcher is closed.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	defer fw.logger.Debug(LogMsgWatcherStopped, zap.String(LogFieldPath, fw.files.Root))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.handle(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn(LogMsgWatcherError, zap.Error(err))
		}
	}
}

// Close stops the watcher; a running Watch returns.
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		err = fw.watcher.Close()
	})
	return err
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	fw.logger.Debug(LogMsgWatcherEvent,
		zap.String(LogFieldPath, event.Name),
		zap.String(LogFieldOperation, event.Op.String()),
	)

	if event.Has(fsnotify.Create) {
		// new directories are watched as well; errors mean it was not a directory
		_ = fw.addTree(event.Name)
	}

	if name, ok := fw.files.Name(event.Name); ok {
		fw.cache.Invalidate(name)
		return
	}
	// a changed directory may hold any number of cached templates
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		fw.cache.Clear()
	}
}

func (fw *FileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.watcher.Add(path)
		}
		return nil
	})
}
