package sqlbatch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jlaffaye/ftp"
)

// FileSystem opens bulk data files for reading
type FileSystem interface {
	Open(fileName string) (io.ReadCloser, error)
}

type LocalFileSystem struct {
}

func (fs *LocalFileSystem) Open(fileName string) (io.ReadCloser, error) {
	return os.Open(fileName)
}

type FTPFileSystem struct {
	Host        string
	Port        int
	User        string
	Password    string
	ConnTimeout time.Duration
}

func (fs *FTPFileSystem) Open(fileName string) (io.ReadCloser, error) {
	c, err := ftp.DialTimeout(fmt.Sprintf("%s:%d", fs.Host, fs.Port), fs.ConnTimeout)
	if err != nil {
		return nil, err
	}
	if err = c.Login(fs.User, fs.Password); err != nil {
		c.Quit()
		return nil, err
	}
	r, err := c.Retr(fileName)
	if err != nil {
		c.Quit()
		return nil, err
	}
	// the connection must outlive the read, Close quits it
	return &ftpFile{conn: c, resp: r}, nil
}

type ftpFile struct {
	conn *ftp.ServerConn
	resp *ftp.Response
}

func (f *ftpFile) Read(p []byte) (int, error) {
	return f.resp.Read(p)
}

func (f *ftpFile) Close() error {
	f.resp.Close()
	return f.conn.Quit()
}

// CSVItemSource reads delimited records from a FileSystem as batch items.
// Each item is a []string record, pairing with CSVRecordBinder.
type CSVItemSource struct {
	FS         FileSystem
	Comma      rune
	SkipHeader bool
}

func (s *CSVItemSource) ReadItems(fileName string) ([]interface{}, error) {
	rc, err := s.FS.Open(fileName)
	if err != nil {
		return nil, NewBatchError(ErrCodeGeneral, "open file failed, file:%v", fileName, err)
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	if s.Comma != 0 {
		reader.Comma = s.Comma
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, NewBatchError(ErrCodeGeneral, "read file failed, file:%v", fileName, err)
	}
	if s.SkipHeader && len(records) > 0 {
		records = records[1:]
	}
	items := make([]interface{}, 0, len(records))
	for _, record := range records {
		items = append(items, record)
	}
	return items, nil
}

// CSVRecordBinder ItemBinder for CSVItemSource items, binding each field of a
// record as one positional parameter
func CSVRecordBinder() ItemBinder {
	return func(item interface{}) ([]interface{}, error) {
		record, ok := item.([]string)
		if !ok {
			return nil, NewBatchError(ErrCodeGeneral, "item is not a csv record: %T", item)
		}
		args := make([]interface{}, len(record))
		for i, field := range record {
			args[i] = field
		}
		return args, nil
	}
}
