package xnd

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/ndview/xnd/log"
	"github.com/ndview/xnd/ndt"
)

// FileOptions configures FromFile.
type FileOptions struct {
	// ReadWrite maps the file read-write instead of read-only, by
	// default (false).
	ReadWrite bool

	// A custom logger.
	Logger log.Logger
}

// FromFile memory-maps name and wraps it as a non-owning Master of type
// t, without copying the file's contents (spec §9's "xnd_from_file"
// factory, one of several ways a Master can be produced). Close unmaps
// the file and releases the descriptor.
func FromFile(name string, t *ndt.Type, opts *FileOptions) (*Master, error) {
	if opts == nil {
		opts = &FileOptions{}
	}
	var logger *log.Helper
	if opts.Logger == nil {
		logger = log.NewHelper(log.NewFilter(log.NewStdLogger(os.Stdout), log.FilterLevel(log.LevelError)))
	} else {
		logger = log.NewHelper(opts.Logger)
	}

	flag, mode := os.O_RDONLY, mmap.RDONLY
	if opts.ReadWrite {
		flag, mode = os.O_RDWR, mmap.RDWR
	}
	f, err := os.OpenFile(name, flag, 0)
	if err != nil {
		return nil, osErr("FromFile: %v", err)
	}
	data, err := mmap.Map(f, mode, 0)
	if err != nil {
		f.Close()
		return nil, osErr("FromFile: mmap: %v", err)
	}

	if int64(len(data)) < t.DataSize() {
		data.Unmap()
		f.Close()
		return nil, valueErr("FromFile: %s is %d bytes, type needs %d", name, len(data), t.DataSize())
	}
	if err := CheckBounds(t, 0, int64(len(data))); err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	bm, err := BitmapInit(t, 1)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	logger.Debugf("mapped %s (%d bytes) read-write=%v", name, len(data), opts.ReadWrite)

	m := &Master{
		Flags: OwnType,
		View: View{
			Bitmap: bm,
			Type:   t,
			Data:   []byte(data),
			Refs:   &RefTable{},
		},
		mmapped: func() error {
			if err := data.Unmap(); err != nil {
				return err
			}
			return f.Close()
		},
	}
	return m, nil
}
