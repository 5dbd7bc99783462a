package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cinesearch/retrieval/internal/eval"
	"github.com/spf13/cobra"
)

// evalFile is the on-disk shape of the --file JSON given to `eval`: one
// actual/predicted document-ID list per query, already in rank order.
type evalFile struct {
	Queries []struct {
		Actual    []string `json:"actual"`
		Predicted []string `json:"predicted"`
	} `json:"queries"`
}

func newEvalCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "score predicted result sets against ground truth",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(path)
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "JSON file of {queries: [{actual, predicted}]} (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runEval(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var ef evalFile
	if err := json.Unmarshal(raw, &ef); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	actual := make([][]string, len(ef.Queries))
	predicted := make([][]string, len(ef.Queries))
	for i, q := range ef.Queries {
		actual[i] = q.Actual
		predicted[i] = q.Predicted
	}

	fmt.Printf("precision  %.4f\n", eval.Precision(actual, predicted))
	fmt.Printf("recall     %.4f\n", eval.Recall(actual, predicted))
	fmt.Printf("f1         %.4f\n", eval.F1(actual, predicted))
	fmt.Printf("map        %.4f\n", eval.MeanAveragePrecision(actual, predicted))
	fmt.Printf("mrr        %.4f\n", eval.MeanReciprocalRank(actual, predicted))

	var ndcgSum float64
	for i := range ef.Queries {
		ndcgSum += eval.NDCG(actual[i], predicted[i])
	}
	if len(ef.Queries) > 0 {
		fmt.Printf("ndcg       %.4f\n", ndcgSum/float64(len(ef.Queries)))
	}
	return nil
}
