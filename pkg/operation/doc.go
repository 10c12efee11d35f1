/*
Package operation runs the apifix pipeline over every configured target.

	+-------------+     +-------------+     +-------------+
	|   status    | --> |   rewrite   | --> |   status    |
	| (ReadText)  |     |  (Apply)    |     | (WriteFile) |
	+-------------+     +-------------+     +-------------+

🎯 Purpose:
- Resolves targets (literal paths and globs) through the status package
- Strips the endpoint prefix with the rewrite package
- Writes changed files atomically, leaves unchanged files alone
- Reports per-file results and the final confirmation through pkg/log

🔄 Operations:
- fix:   read → rewrite → write, then print the confirmation message
- check: read → rewrite, render a table, fail with ErrPending if work remains

⚡ Runner:
Targets are processed one after another unless the config asks for async,
in which case an errgroup with a bounded limit is used. Results always come
back in target order and the first fatal error cancels the rest.

🔍 Example:

	op, err := operation.NewFixOperation(operation.Options{
		Config:   cfg,
		Files:    status.NewManager(cfg.BaseDir),
		Rewriter: rw,
		Logger:   logger,
		Runner:   operation.NewRunner(cfg.Async),
	}, false)
	summary, err := op.Execute(ctx)
*/
package operation
