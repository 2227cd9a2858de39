package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"ticket-chat/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "conversation:", "Prefix to scan (empty for every key)")
	limit := flag.Int("limit", 1000, "Maximum number of rows")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Timestamp", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows, broken := 0, 0
	err = db.View(func(txn *badger.Txn) error {
		prefixBytes := []byte(*prefix)
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefixBytes, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()

		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes) && rows < *limit; it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			record := repositories.DescribeRecord(item.KeyCopy(nil), val)
			if strings.HasPrefix(record.Detail, "Error:") {
				// A broken record is reported, the scan goes on
				color.Red.Printf("%s: %s\n", record.Key, record.Detail)
				broken++
				continue
			}
			at := ""
			if !record.At.IsZero() {
				at = record.At.Format("2006-01-02 15:04:05")
			}
			table.Append([]string{record.Key, record.Kind, at, record.Detail})
			rows++
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	color.Green.Printf("%d record(s) under %q", rows, *prefix)
	if broken > 0 {
		color.Yellow.Printf(", %d unreadable", broken)
	}
	fmt.Println()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		// A crashed writer leaves a value log to truncate, which needs a write open first
		if strings.Contains(err.Error(), "Log truncate required") {
			color.Yellow.Println("Value log needs truncation, reopening in write mode once")
			repaired, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil).WithBypassLockGuard(true))
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			_ = repaired.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
