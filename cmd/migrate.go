package cmd

import (
	"nftpool/store/journal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// command for migrating database
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate pool snapshot, event and property tables",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		if cfg.Pool.Address == "" {
			return
		}

		pool := common.HexToAddress(cfg.Pool.Address)
		version, err := journal.Checkpoint(ctx, providePropertyStore(database), pool)
		if err != nil {
			cmd.PrintErrln("read checkpoint error:", err)
			return
		}

		cmd.Printf("pool %s checkpoint at version %d\n", pool.Hex(), version)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
