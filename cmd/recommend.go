package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/logger"
	"github.com/talentsift/shl-recommender/internal/recommend"
)

const (
	promptShowJSON = "Show as JSON"
	promptNewQuery = "New query"
	promptExit     = "Exit"
)

var followupPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{promptShowJSON, promptNewQuery, promptExit},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [query or url]",
	Short: "Recommend assessments for a hiring query or a job posting URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRecommend(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().BoolP("url", "u", false, "treat the argument as a job posting URL")
	recommendCmd.Flags().IntP("max-results", "n", 10, "maximum number of recommendations")
	recommendCmd.Flags().Bool("save", false, "record the query in the database")
	recommendCmd.Flags().Bool("no-prompt", false, "print the results and exit")
}

func runRecommend(cmd *cobra.Command, input string) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	isURL, _ := cmd.Flags().GetBool("url")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	save, _ := cmd.Flags().GetBool("save")
	noPrompt, _ := cmd.Flags().GetBool("no-prompt")

	st, err := openStore(ctx, config.Database, zlog)
	if err != nil {
		zlog.Fatal("opening the store", zap.Error(err))
	}
	if st != nil {
		defer st.Close()
	}

	scraper := newScraper(config.Catalog, zlog)

	candidates, err := loadCandidates(ctx, config.Catalog, st, scraper, zlog)
	if err != nil {
		zlog.Fatal("loading the assessment catalog", zap.Error(err))
	}

	var queryStore recommend.QueryStore
	if st != nil && save {
		queryStore = st
	}

	engine := recommend.NewEngine(buildScorers(ctx, config.AI, config.Redis, zlog), scraper, queryStore, zlog)

	for {
		recs := engine.Recommend(ctx, input, candidates.Items, isURL, maxResults, save)
		printRecommendations(input, recs)

		if noPrompt {
			return
		}

		again := false
		for !again {
			_, action, err := followupPrompt.Run()
			if err != nil {
				zlog.Fatal("exiting", zap.Error(err))
			}

			switch action {
			case promptShowJSON:
				pretty, _ := json.MarshalIndent(recs, "", "  ")
				fmt.Println(string(pretty))
			case promptNewQuery:
				next := promptui.Prompt{Label: "Enter a new query"}
				text, err := next.Run()
				if err != nil {
					zlog.Fatal("exiting", zap.Error(err))
				}
				input = strings.TrimSpace(text)
				isURL = false
				again = true
			case promptExit:
				return
			}
		}
	}
}

func printRecommendations(input string, recs []*recommend.Recommendation) {
	if len(recs) == 0 {
		fmt.Printf("No recommendations for %q\n", input)
		return
	}

	fmt.Printf("Recommendations for %q:\n", input)
	for i, rec := range recs {
		a := rec.Assessment
		fmt.Printf("%2d. %s (score %.2f)\n    %s | %s | remote: %s\n    %s\n",
			i+1, a.Name, rec.Score, a.TestType, a.Duration, a.RemoteTesting, a.URL)
	}
}
