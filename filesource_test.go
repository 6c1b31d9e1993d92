package sqlbatch

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmizerany/assert"
)

func writeTempCSV(t *testing.T, content string) string {
	dir, err := ioutil.TempDir("", "sqlbatch")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	name := filepath.Join(dir, "items.csv")
	if err := ioutil.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestCSVItemSource_ReadItems(t *testing.T) {
	name := writeTempCSV(t, "id,currency,balance\n1,EUR,100\n2,USD,250\n3,GBP,75\n")
	src := &CSVItemSource{FS: &LocalFileSystem{}, SkipHeader: true}

	items, err := src.ReadItems(name)
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, len(items))
	assert.Equal(t, []string{"1", "EUR", "100"}, items[0])
	assert.Equal(t, []string{"3", "GBP", "75"}, items[2])
}

func TestCSVItemSource_MissingFile(t *testing.T) {
	src := &CSVItemSource{FS: &LocalFileSystem{}}
	_, err := src.ReadItems("/no/such/file.csv")
	assert.NotEqual(t, nil, err)
}

func TestCSVRecordBinder(t *testing.T) {
	binder := CSVRecordBinder()
	args, err := binder([]string{"1", "EUR", "100"})
	assert.Equal(t, nil, err)
	assert.Equal(t, []interface{}{"1", "EUR", "100"}, args)

	_, err = binder(42)
	assert.NotEqual(t, nil, err)
}

func TestCSVItemSource_FeedsBatchInsert(t *testing.T) {
	name := writeTempCSV(t, "1,EUR,100\n2,USD,250\n3,GBP,75\n")
	src := &CSVItemSource{FS: &LocalFileSystem{}}
	items, err := src.ReadItems(name)
	assert.Equal(t, nil, err)

	fake := &fakeExecutor{}
	e := NewEngine(fake, nil)
	out := getOutcome(t, e.BatchInsert(context.Background(),
		"insert into account(id, currency, balance) values(?, ?, ?)", items, CSVRecordBinder()))
	assert.Equal(t, int64(3), out.ProcessedCount)
	assert.Equal(t, true, out.Success)
}
