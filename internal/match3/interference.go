package match3

var concreteObstacles = [3]ObstacleRule{RuleRock, RuleSteel, RuleIce}

// ObstacleFor returns the rule enemy triggers. Unmapped elements are random.
func (e *Engine) ObstacleFor(enemy Kind) ObstacleRule {
	rule, ok := e.params.Rules[enemy.Element]
	if !ok || !rule.Valid() {
		return RuleRandom
	}
	return rule
}

// ApplyInterference turns a few normal tiles into the obstacle dictated by
// the enemy's element. Between InterferenceMin and InterferenceMax tiles
// are picked, fewer if the board lacks normal tiles. Frozen tiles keep their
// kind; rock and steel take the shared obstacle kind and glyph. Tiles that
// are already obstacles are never touched.
func (e *Engine) ApplyInterference(b Board, enemy Kind) Board {
	return e.ApplyInterferenceExtra(b, enemy, 0)
}

// ApplyInterferenceExtra is ApplyInterference with extra tiles added to the
// drawn count. Negative extra counts as zero.
func (e *Engine) ApplyInterferenceExtra(b Board, enemy Kind, extra int) Board {
	rule := e.ObstacleFor(enemy)
	if rule == RuleRandom {
		rule = concreteObstacles[e.rng.Intn(len(concreteObstacles))]
	}

	candidates := make([]int, 0, len(b.Tiles))
	for i, t := range b.Tiles {
		if t.Status == StatusNormal {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return b.Clone()
	}

	lo, hi := e.params.InterferenceMin, e.params.InterferenceMax
	count := min(lo+e.rng.Intn(hi-lo+1)+max(extra, 0), len(candidates))

	out := b.Clone()
	for i := range count {
		j := i + e.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]

		t := &out.Tiles[candidates[i]]
		switch rule {
		case RuleIce:
			t.Status = StatusIce
		case RuleRock:
			t.Status = StatusRock
			t.KindID = ObstacleKindID
			t.Visual = VisualRock
		case RuleSteel:
			t.Status = StatusSteel
			t.KindID = ObstacleKindID
			t.Visual = VisualSteel
			t.StatusLife = e.params.SteelLife
		}
	}

	return out
}
