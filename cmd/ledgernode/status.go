package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/LogosNetwork/logos-core-sub003/internal/config"
	"github.com/LogosNetwork/logos-core-sub003/internal/epoch"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

// printStatus renders the seated committee of set as a table.
func printStatus(set *epoch.Set, cfg *config.Config) error {
	fmt.Printf("epoch: %d   this delegate: %d\n", set.Num, cfg.DelegateID)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"seat", "account", "vote", "stake", "starting_term"})
	for i, d := range set.Delegates {
		if d.Account == types.ZeroHash {
			continue
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			d.Account.Hex(),
			d.Vote.String(),
			d.Stake.String(),
			fmt.Sprintf("%v", d.StartingTerm),
		})
	}
	table.Render()
	return nil
}
