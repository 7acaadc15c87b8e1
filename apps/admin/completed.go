package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// completed prints the tests the user completed, marking testID first when set.
func (cli *commandLine) completed(userID, testID string) error {
	ctx := context.Background()
	var (
		ids map[string]bool
		err error
	)
	if testID != "" {
		ids, err = cli.tracker.MarkCompleted(ctx, userID, testID)
	} else {
		ids, err = cli.tracker.Completed(ctx, userID)
	}
	if err != nil {
		return err
	}

	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.stdout, string(b))
	return nil
}
