package input

import "github.com/sarchlab/dcsmapper/model"

// parseTasks reads the `tasks` section: an application type keyword
// (`task_list` or `kpn`), its body, then the shared
// default_mapping/mapping_list/static_list trailer. It returns the
// parsed application and the per-task PE/static-pin tables; pe may
// still be amended afterward by trailing mapping_list blocks (see
// Parse), so it is returned unwrapped rather than as
// []model.MappingOverride.
func parseTasks(l *lexer) (app model.Application, pe []int, static []bool) {
	switch apptype := l.word(); apptype {
	case "task_list":
		app = parseSTG(l)
	case "kpn":
		app = parseKPN(l)
	default:
		errf("unknown application type: %s", apptype)
	}

	ntasks := app.NTasks()

	l.match("default_mapping")
	defaultPE := l.int()
	if defaultPE < 0 {
		errf("default_mapping must be non-negative, got %d", defaultPE)
	}

	pe = make([]int, ntasks)
	static = make([]bool, ntasks)
	for i := range pe {
		pe[i] = defaultPE
	}

	l.match("mapping_list")
	parseMappingList(l, ntasks, pe)

	l.match("static_list")
	nstatic := l.int()
	if nstatic < 0 || nstatic > ntasks {
		errf("static_list count must be in [0,%d], got %d", ntasks, nstatic)
	}
	for i := 0; i < nstatic; i++ {
		taskID := l.int()
		if taskID < 0 || taskID >= ntasks {
			errf("static_list task id %d out of range [0,%d)", taskID, ntasks)
		}
		static[taskID] = true
	}

	return app, pe, static
}

// parseMappingList reads `<n> { map <taskid> <peid> }` and writes each
// entry into pe, overwriting that task's default.
func parseMappingList(l *lexer, ntasks int, pe []int) {
	n := l.int()
	if n < 0 || n > ntasks {
		errf("mapping_list count must be in [0,%d], got %d", ntasks, n)
	}
	for i := 0; i < n; i++ {
		l.match("map")
		taskID := l.int()
		if taskID < 0 || taskID >= ntasks {
			errf("mapping_list task id %d out of range [0,%d)", taskID, ntasks)
		}
		peID := l.int()
		if peID < 0 {
			errf("mapping_list PE id must be non-negative, got %d", peID)
		}
		pe[taskID] = peID
	}
}

// parseSTG reads `<ntasks> { task <id> out <nresult> { <bytes> <ndst>
// <dst...> } weight <w> }`, then derives each task's Parents/PeerBytes/
// NTResIn via STGApp.Prepare.
func parseSTG(l *lexer) *model.STGApp {
	ntasks := l.int()
	if ntasks <= 0 {
		errf("task_list count must be positive, got %d", ntasks)
	}

	app := &model.STGApp{Tasks: make([]*model.STGTask, ntasks)}

	for i := 0; i < ntasks; i++ {
		l.match("task")
		app.Tasks[i] = parseSTGTask(l, i)
	}

	app.Prepare()
	return app
}

func parseSTGTask(l *lexer, expectID int) *model.STGTask {
	id := l.int()
	if id != expectID {
		errf("tasks must be numbered sequentially from 0: expected %d, got %d", expectID, id)
	}

	task := &model.STGTask{ID: id}

	l.match("out")
	nresult := l.int()
	if nresult < 0 {
		errf("task %d: out count must be non-negative, got %d", id, nresult)
	}

	task.Results = make([]model.STGResult, nresult)
	for i := 0; i < nresult; i++ {
		bytes := l.int()
		if bytes <= 0 {
			errf("task %d: result bytes must be positive, got %d", id, bytes)
		}
		ndst := l.int()
		if ndst <= 0 {
			errf("task %d: result ndst must be positive, got %d", id, ndst)
		}
		dsts := make([]int, ndst)
		for j := range dsts {
			dsts[j] = l.int()
		}
		task.Results[i] = model.STGResult{Bytes: bytes, Dsts: dsts}
	}

	l.match("weight")
	task.Weight = l.float64()
	if task.Weight <= 0 {
		errf("task %d: weight must be positive, got %v", id, task.Weight)
	}

	return task
}

// parseKPN reads processes until `end_kpn`: each process is `<id>
// <ninsts> { c <amount> | r <src> | w <dst> <amount> }`.
func parseKPN(l *lexer) *model.KPNApp {
	app := &model.KPNApp{}

	for {
		first, ok := l.peekWord()
		if !ok {
			errf("unexpected end of input in kpn section")
		}
		if first == "end_kpn" {
			break
		}

		id := parseUintWord(first)
		if id != len(app.Processes) {
			errf("kpn processes must be numbered sequentially from 0: expected %d, got %d", len(app.Processes), id)
		}

		ninsts := l.int()
		if ninsts < 0 {
			errf("kpn process %d: ninsts must be non-negative, got %d", id, ninsts)
		}

		p := &model.KPNProcess{ID: id, Instructions: make([]model.Instruction, ninsts)}
		for i := 0; i < ninsts; i++ {
			p.Instructions[i] = parseKPNInst(l)
		}
		app.Processes = append(app.Processes, p)
	}

	ntasks := len(app.Processes)
	for _, p := range app.Processes {
		for _, inst := range p.Instructions {
			if inst.Kind == model.InstRead && (inst.Src < 0 || inst.Src >= ntasks) {
				errf("kpn process %d: read source %d out of range [0,%d)", p.ID, inst.Src, ntasks)
			}
			if inst.Kind == model.InstWrite && (inst.Dst < 0 || inst.Dst >= ntasks) {
				errf("kpn process %d: write destination %d out of range [0,%d)", p.ID, inst.Dst, ntasks)
			}
		}
	}

	return app
}

func parseKPNInst(l *lexer) model.Instruction {
	switch cmd := l.word(); cmd {
	case "c":
		amount := l.float64()
		if amount <= 0 {
			errf("compute amount must be positive, got %v", amount)
		}
		return model.Instruction{Kind: model.InstCompute, Amount: amount}
	case "r":
		return model.Instruction{Kind: model.InstRead, Src: l.int()}
	case "w":
		dst := l.int()
		amount := l.float64()
		if amount <= 0 {
			errf("write amount must be positive, got %v", amount)
		}
		return model.Instruction{Kind: model.InstWrite, Dst: dst, Amount: amount}
	default:
		errf("unknown kpn instruction: %s", cmd)
		return model.Instruction{}
	}
}

func parseUintWord(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			errf("expected a process id, got %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n
}
