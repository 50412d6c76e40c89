// Package writer stores converted documents at their destinations.
//
// Each destination is written by a synthfs pipeline: the content goes to a
// fresh hidden temporary sibling and is synced, the previous file is copied
// to its backup name (when backups are on), and the temporary file is then
// renamed over the destination. The destination is only touched by that
// last step, so any failure leaves it as it was.
package writer

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"

	"github.com/xnat/convertdemo/pkg/errors"
	"github.com/xnat/convertdemo/pkg/logging"
	"github.com/xnat/convertdemo/pkg/paths"
	"github.com/xnat/convertdemo/pkg/types"
)

const defaultPerm fs.FileMode = 0644

// Options controls backup and creation behaviour.
type Options struct {
	// Backup keeps the previous destination under its backup name.
	Backup       bool
	BackupSuffix string
	// RequireExisting fails when a destination does not exist yet.
	RequireExisting bool
}

// Writer writes rendered documents through a types.FS.
type Writer struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a Writer.
func New(fsys types.FS, opts Options) *Writer {
	return &Writer{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("writer"),
	}
}

// Render joins lines, terminating each with "\n".
func Render(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Write stores lines at every destination, in order. It stops at the first
// failure and returns the results gathered so far.
func (w *Writer) Write(lines []string, destinations []string) ([]types.WriteResult, error) {
	target, err := synthTarget(w.fs)
	if err != nil {
		return nil, err
	}

	data := Render(lines)
	results := make([]types.WriteResult, 0, len(destinations))

	for _, dest := range destinations {
		res, err := w.writeOne(context.Background(), target, data, dest)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Check verifies that dest could be written without writing anything.
func (w *Writer) Check(dest string) error {
	_, _, err := w.precheck(dest)
	return err
}

// precheck returns the existing destination info, if any, and its mode.
func (w *Writer) precheck(dest string) (fs.FileInfo, fs.FileMode, error) {
	dir := filepath.Dir(dest)
	info, err := w.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, 0, errors.Newf(errors.ErrDirNotFound, "destination directory %s does not exist", dir).
			WithDetail("path", dest)
	}

	existing, err := w.fs.Stat(dest)
	switch {
	case err == nil:
		if existing.IsDir() {
			return nil, 0, errors.Newf(errors.ErrFileWrite, "destination %s is a directory", dest).
				WithDetail("path", dest)
		}
		return existing, existing.Mode().Perm(), nil
	case stderrors.Is(err, fs.ErrNotExist):
		if w.opts.RequireExisting {
			return nil, 0, errors.Newf(errors.ErrFileNotFound,
				"destination %s does not exist; create it first or allow missing destinations", dest).
				WithDetail("path", dest)
		}
		return nil, defaultPerm, nil
	default:
		return nil, 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", dest).
			WithDetail("path", dest)
	}
}

func (w *Writer) writeOne(ctx context.Context, target filesystem.FullFileSystem, data []byte, dest string) (types.WriteResult, error) {
	res := types.WriteResult{Path: dest, Bytes: len(data)}

	existing, perm, err := w.precheck(dest)
	if err != nil {
		return res, err
	}
	res.Created = existing == nil

	var backup string
	if existing != nil && w.opts.Backup {
		if w.opts.BackupSuffix == "" {
			return res, errors.New(errors.ErrInvalidInput, "backup suffix must not be empty")
		}
		backup = paths.BackupPath(dest, w.opts.BackupSuffix)
	}

	tmp, err := w.tempPath(dest)
	if err != nil {
		return res, err
	}
	details := map[string]interface{}{"path": dest, "temp": tmp}

	failure := &firstError{}
	sfs := synthfs.New()
	stamp := time.Now().UnixNano()
	base := filepath.Base(dest)

	ops := []synthfs.Operation{
		sfs.CreateFileWithID(fmt.Sprintf("write_%s_%d", base, stamp), tmp, data, perm),
		sfs.CustomOperationWithID(fmt.Sprintf("sync_%s_%d", base, stamp), func(_ context.Context, fsys filesystem.FileSystem) error {
			if err := syncFile(fsys, tmp); err != nil {
				return failure.set(errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", tmp).WithDetails(details))
			}
			return nil
		}),
	}
	if backup != "" {
		ops = append(ops, backupOp(sfs, fmt.Sprintf("backup_%s_%d", base, stamp), dest, backup, failure))
	}
	ops = append(ops, sfs.CustomOperationWithID(fmt.Sprintf("replace_%s_%d", base, stamp), func(_ context.Context, fsys filesystem.FileSystem) error {
		if failure.err != nil {
			return failure.err
		}
		if err := replaceFile(fsys, tmp, dest, data, perm); err != nil {
			return failure.set(errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dest).
				WithDetails(details).
				WithDetail("backup", backup))
		}
		return nil
	}))

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	if _, err := synthfs.RunWithOptions(ctx, target, options, ops...); err != nil || failure.err != nil {
		_ = w.fs.Remove(tmp)
		if failure.err != nil {
			return res, failure.err
		}
		return res, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest).WithDetails(details)
	}
	res.BackupPath = backup

	w.logger.Info().
		Str("path", dest).
		Str("backup", res.BackupPath).
		Int("bytes", res.Bytes).
		Bool("created", res.Created).
		Msg("Wrote destination")
	return res, nil
}

// tempPath picks a hidden sibling of dest that does not exist yet.
func (w *Writer) tempPath(dest string) (string, error) {
	dir, base := filepath.Split(dest)
	stamp := time.Now().UnixNano()
	for i := int64(0); i < 16; i++ {
		tmp := filepath.Join(dir, fmt.Sprintf(".%s.%d.tmp", base, stamp+i))
		if _, err := w.fs.Stat(tmp); stderrors.Is(err, fs.ErrNotExist) {
			return tmp, nil
		}
	}
	return "", errors.Newf(errors.ErrFileWrite, "no free temporary name next to %s", dest).
		WithDetail("path", dest)
}

// Backup copies path to its backup name and returns that name. It fails
// with FILE_NOT_FOUND when path does not exist.
func Backup(fsys types.FS, path, suffix string) (string, error) {
	if suffix == "" {
		return "", errors.New(errors.ErrInvalidInput, "backup suffix must not be empty")
	}
	if _, err := fsys.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.Wrapf(err, errors.ErrFileNotFound, "nothing to back up at %s", path).
				WithDetail("path", path)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
			WithDetail("path", path)
	}
	target, err := synthTarget(fsys)
	if err != nil {
		return "", err
	}

	backup := paths.BackupPath(path, suffix)
	failure := &firstError{}

	op := backupOp(synthfs.New(), fmt.Sprintf("backup_%s_%d", filepath.Base(path), time.Now().UnixNano()), path, backup, failure)
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	if _, err := synthfs.RunWithOptions(context.Background(), target, options, op); err != nil || failure.err != nil {
		if failure.err != nil {
			return "", failure.err
		}
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot copy %s to %s", path, backup).
			WithDetails(map[string]interface{}{"path": path, "backup": backup})
	}
	return backup, nil
}

// backupOp copies path over backup, replacing an older backup.
func backupOp(sfs *synthfs.SynthFS, id, path, backup string, failure *firstError) synthfs.Operation {
	return sfs.CustomOperationWithID(id, func(_ context.Context, fsys filesystem.FileSystem) error {
		if failure.err != nil {
			return failure.err
		}
		if err := copyFile(fsys, path, backup); err != nil {
			return failure.set(errors.Wrapf(err, errors.ErrBackup, "cannot copy %s to %s", path, backup).
				WithDetails(map[string]interface{}{"path": path, "backup": backup}))
		}
		return nil
	})
}

// synthTarget returns fsys as a filesystem synthfs pipelines can run on.
func synthTarget(fsys types.FS) (filesystem.FullFileSystem, error) {
	target, ok := fsys.(filesystem.FullFileSystem)
	if !ok {
		return nil, errors.Newf(errors.ErrInternal, "filesystem %T cannot run write pipelines", fsys)
	}
	return target, nil
}

// firstError keeps the first coded error raised inside a pipeline, so
// callers see it instead of synthfs's wrapping.
type firstError struct {
	err error
}

func (f *firstError) set(err error) error {
	if f.err == nil {
		f.err = err
	}
	return f.err
}

type syncer interface {
	Sync() error
}

type renamer interface {
	Rename(oldpath, newpath string) error
}

func syncFile(fsys filesystem.FileSystem, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if s, ok := f.(syncer); ok {
		return s.Sync()
	}
	return nil
}

func copyFile(fsys filesystem.FileSystem, source, destination string) error {
	f, err := fsys.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	mode := defaultPerm
	if full, ok := fsys.(filesystem.FullFileSystem); ok {
		if info, err := full.Stat(source); err == nil {
			mode = info.Mode().Perm()
		}
	}
	return fsys.WriteFile(destination, content, mode)
}

// replaceFile moves tmp over dest. Filesystems without rename get the
// content written in place instead.
func replaceFile(fsys filesystem.FileSystem, tmp, dest string, data []byte, perm fs.FileMode) error {
	if r, ok := fsys.(renamer); ok {
		return r.Rename(tmp, dest)
	}
	if err := fsys.WriteFile(dest, data, perm); err != nil {
		return err
	}
	return fsys.Remove(tmp)
}
