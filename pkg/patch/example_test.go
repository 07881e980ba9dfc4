package patch_test

import (
	"context"
	"fmt"

	"github.com/walteh/pagepatch/pkg/patch"
)

func ExamplePatch() {
	rules, err := patch.CompileAll([]patch.Definition{
		{
			Name:     "title",
			Pattern:  `<h1 class="page-title">.*?</h1>`,
			Template: `<h1 class="page-title">New</h1><span class="ai-badge">badge</span>`,
			Required: true,
		},
		{
			Name:     "footer",
			Pattern:  `<footer>`,
			Template: "<footer><p>extra</p>",
		},
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := patch.Patch(context.Background(), `<h1 class="page-title">Old</h1>`, rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(result.Text)
	for _, o := range result.Outcomes {
		fmt.Printf("%s: %s\n", o.Rule, o.Status)
	}
	fmt.Printf("Applied: %d\n", result.AppliedCount())

	// Output:
	// <h1 class="page-title">New</h1><span class="ai-badge">badge</span>
	// title: applied
	// footer: skipped
	// Applied: 1
}

func ExamplePatch_requiredMiss() {
	rules, _ := patch.CompileAll([]patch.Definition{
		{Name: "anchor", Pattern: `<!-- anchor -->`, Template: "x", Required: true},
	})

	_, err := patch.Patch(context.Background(), "<p>no anchor</p>", rules)
	fmt.Println(err)
	fmt.Println(patch.KindOf(err))

	// Output:
	// rule "anchor": required rule did not match
	// no-match
}
