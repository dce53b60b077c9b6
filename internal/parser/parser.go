package parser

// optimalParse runs one left-to-right sweep over [blockStart, blockEnd),
// filling arrivals with every reachable parse state (spec §4.5). When
// insertForwardReps is true, every non-rep match transition also triggers
// forward-rep injection (spec §4.6) before arrivals are computed for it;
// this is the "first pass" role in the module's data flow. When false, no
// injection happens and a backward walk is performed at the end to produce
// ctx.best — the "second, final pass" role.
func (ctx *Context) optimalParse(arrivals *ArrivalTable, blockStart, blockEnd int, repOffset int, insertForwardReps bool, flags BlockFlags) {
	arrivals.Reset()
	root := arrivals.Row(blockStart)
	root[0] = Arrival{FromSlot: -1, RepOffset: repOffset}

	width := arrivals.Width()
	repLimit := width
	nonRepLimit := width - 1
	if nonRepLimit < 1 {
		nonRepLimit = width
	}

	for i := blockStart; i < blockEnd; i++ {
		row := arrivals.Row(i)
		if row[0].empty() {
			continue
		}

		for slot := range row {
			a := row[slot]
			if a.empty() {
				break
			}
			ctx.tryLiteral(arrivals, i, slot, a, blockEnd, repLimit)
		}

		if i == blockStart && flags.isFirst() {
			continue
		}

		ctx.tryNonRepMatches(arrivals, i, blockEnd, insertForwardReps, nonRepLimit)
		ctx.tryRepMatches(arrivals, i, blockEnd, repLimit)
	}

	if !insertForwardReps {
		ctx.backwardWalk(arrivals, blockStart, blockEnd)
	}
}

// tryLiteral extends arrival a at i by one literal byte.
func (ctx *Context) tryLiteral(arrivals *ArrivalTable, i, slot int, a Arrival, blockEnd, repLimit int) {
	numLiterals := a.NumLiterals + 1
	cost := a.Cost + uint32(literalRunGrowthCost(a.NumLiterals))
	if a.NumLiterals == 0 {
		cost += modeSwitchPenaltyBits
	}
	cand := Arrival{
		Cost:        cost,
		FromPos:     i,
		FromSlot:    slot + 1,
		MatchLen:    0,
		NumLiterals: numLiterals,
		RepOffset:   a.RepOffset,
		RepPos:      a.RepPos,
		Score:       a.Score + 1,
	}
	insertArrival(arrivals.Row(i+1), cand, repLimit)
}

// tryNonRepMatches considers every offered (offset, length) candidate at i,
// including each candidate's depth-offset synonym, producing successors at
// every landing length the spec's LEAVE_ALONE_MATCH_SIZE rule allows.
func (ctx *Context) tryNonRepMatches(arrivals *ArrivalTable, i, blockEnd int, insertForwardReps bool, nonRepLimit int) {
	row := arrivals.Row(i)
	slots := ctx.matchTable.At(i)

	for m := 0; m < len(slots) && slots[m].Length != 0; m++ {
		origLen := slots[m].Len()
		origOffset := int(slots[m].Offset)
		origApprox := slots[m].Approximate()
		depth := slots[m].SynonymCount()

		step := depth
		if step == 0 {
			step = 1
		}
		for d := 0; d <= depth; d += step {
			matchOffset := origOffset - d
			matchLen := origLen - d
			if i+matchLen > blockEnd {
				matchLen = blockEnd - i
			}
			if matchOffset < MinOffset || matchOffset > ctx.maxOffset || matchLen < 2 {
				continue
			}

			if insertForwardReps {
				ctx.forwardRepInject(arrivals, matchOffset, i, 0)
			}

			nonRepOffsetCost := offsetCost(matchOffset)
			scorePenalty := uint32(3)
			if origApprox {
				scorePenalty++
			}

			srcSlot := -1
			for j := range row {
				a := row[j]
				if a.empty() {
					break
				}
				if matchOffset != a.RepOffset || a.NumLiterals == 0 {
					nonRepOffsetCost += int(a.Cost)
					if a.NumLiterals == 0 {
						nonRepOffsetCost += modeSwitchPenaltyBits
					}
					srcSlot = j
					break
				}
			}
			if srcSlot < 0 {
				if d == depth {
					break
				}
				continue
			}
			srcScore := row[srcSlot].Score + scorePenalty

			start := 1
			if matchLen >= LeaveAloneMatchSize {
				start = matchLen
			}
			for k := start; k <= matchLen; k++ {
				if k < 2 {
					continue
				}
				cost := uint32(nonRepOffsetCost) + uint32(matchTokenCost) + uint32(nonRepMatchLengthCost(k))
				cand := Arrival{
					Cost:        cost,
					FromPos:     i,
					FromSlot:    srcSlot + 1,
					MatchLen:    k,
					NumLiterals: 0,
					RepOffset:   matchOffset,
					RepPos:      i,
					Score:       srcScore,
				}
				insertArrival(arrivals.Row(i+k), cand, nonRepLimit)
			}

			if d == depth {
				break
			}
		}

		if origLen >= 512 {
			break
		}
	}
}

type repCandidate struct {
	slot   int
	repLen int
}

// tryRepMatches pre-scans every arrival at i for a usable rep-offset match,
// then inserts a successor for each length every such arrival reaches.
func (ctx *Context) tryRepMatches(arrivals *ArrivalTable, i, blockEnd int, repLimit int) {
	if i >= ctx.end {
		return
	}
	row := arrivals.Row(i)

	var cands []repCandidate
	maxRepLen := 0
	for slot := range row {
		a := row[slot]
		if a.empty() {
			break
		}
		if a.NumLiterals == 0 {
			continue
		}
		r := a.RepOffset
		if r == 0 || i < r {
			continue
		}
		if ctx.window[i] != ctx.window[i-r] {
			continue
		}
		length := ctx.extendRepOffset(i, r)
		if length < 2 {
			continue
		}
		if length > maxRepLen {
			maxRepLen = length
		}
		cands = append(cands, repCandidate{slot: slot, repLen: length})
	}
	if len(cands) == 0 {
		return
	}

	for k := 2; k <= maxRepLen; k++ {
		cost := uint32(matchTokenCost + repMatchLengthCost(k))
		for _, rc := range cands {
			if rc.repLen < k {
				continue
			}
			a := row[rc.slot]
			cand := Arrival{
				Cost:        a.Cost + cost,
				FromPos:     i,
				FromSlot:    rc.slot + 1,
				MatchLen:    k,
				NumLiterals: 0,
				RepOffset:   a.RepOffset,
				RepPos:      a.RepPos,
				Score:       a.Score + 2,
			}
			insertArrival(arrivals.Row(i+k), cand, repLimit)
		}
	}
}

// backwardWalk follows from_pos/from_slot pointers from the block-end
// slot-0 arrival back to blockStart, writing ctx.best (spec §4.5,
// "Backward walk").
func (ctx *Context) backwardWalk(arrivals *ArrivalTable, blockStart, blockEnd int) {
	for i := blockStart; i < blockEnd; i++ {
		ctx.best[i-blockStart] = BestMatch{}
	}
	end := arrivals.Row(blockEnd)[0]
	cur := end
	for cur.FromSlot > 0 && cur.FromPos >= blockStart && cur.FromPos < blockEnd {
		bm := BestMatch{Length: cur.MatchLen}
		if cur.MatchLen != 0 {
			bm.Offset = cur.RepOffset
		}
		ctx.best[cur.FromPos-blockStart] = bm
		cur = arrivals.Row(cur.FromPos)[cur.FromSlot-1]
	}
}
