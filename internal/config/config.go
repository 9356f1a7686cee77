// Package config is the single source of truth for loading a battle's
// configuration: the unit/ability/trait/item data tables plus the tuning
// defaults, read from YAML, and the HTTP server's own port/env settings.
//
// IMPORTANT: the battle tuning defaults come from engine.DefaultDefaults;
// this file holds only the server's own defaults.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rentierek/data-driven-autochess/internal/ability"
	"github.com/rentierek/data-driven-autochess/internal/damage"
	"github.com/rentierek/data-driven-autochess/internal/effect"
	"github.com/rentierek/data-driven-autochess/internal/engine"
	"github.com/rentierek/data-driven-autochess/internal/target"
	"github.com/rentierek/data-driven-autochess/internal/unit"
)

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds the battle-API HTTP server's settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{Port: 3000}
}

// ServerFromEnv returns the server configuration with environment
// variable overrides applied.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()
	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	return cfg
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// =============================================================================
// BATTLE DATA TABLES (loaded from YAML)
// =============================================================================

// EffectDef is the YAML-facing shape of effect.Descriptor: every field an
// effect kind might need, named the way a data file author would write it.
// loadDescriptor rejects any Kind string it does not recognise, so a typo
// in a data file is a configuration error, never a silent no-op at apply
// time.
type EffectDef struct {
	Kind  string     `yaml:"kind"`
	Values [3]float64 `yaml:"values"`

	ScalesOn            string `yaml:"scales_on"`
	TargetsDefenderStat bool   `yaml:"targets_defender_stat"`

	DamageType string `yaml:"damage_type"`

	DurationTicks int `yaml:"duration_ticks"`
	IntervalTicks int `yaml:"interval_ticks"`

	Radius           int     `yaml:"radius"`
	ConeHalfAngleDeg float64 `yaml:"cone_half_angle_deg"`
	LineWidth        int     `yaml:"line_width"`

	ChainCount  int `yaml:"chain_count"`
	ChainRadius int `yaml:"chain_radius"`

	HitCount int `yaml:"hit_count"`

	StatKey string  `yaml:"stat_key"`
	Pct     float64 `yaml:"pct"`
	Flat    float64 `yaml:"flat"`

	Buff *BuffDef `yaml:"buff"`

	StackGroup string `yaml:"stack_group"`
	StackCap   int    `yaml:"stack_cap"`

	KnockbackHexes int `yaml:"knockback_hexes"`

	ManaAmount float64 `yaml:"mana_amount"`

	ReplaceCount   int         `yaml:"replace_count"`
	ReplaceEffects []EffectDef `yaml:"replace_effects"`

	Nested []EffectDef `yaml:"nested"`

	NextAbilityID string `yaml:"next_ability_id"`
	CastThreshold int    `yaml:"cast_threshold"`

	ZoneEffect *EffectDef `yaml:"zone_effect"`

	ProjectileSpeed   float64     `yaml:"projectile_speed"`
	ProjectileHoming  bool        `yaml:"projectile_homing"`
	ProjectileCanMiss bool        `yaml:"projectile_can_miss"`
	ProjectilePayload []EffectDef `yaml:"projectile_payload"`
}

// BuffDef is the YAML-facing shape of effect.BuffTemplate.
type BuffDef struct {
	ID            string             `yaml:"id"`
	FlatDeltas    map[string]float64 `yaml:"flat_deltas"`
	PercentDeltas map[string]float64 `yaml:"percent_deltas"`
	DurationTicks int                `yaml:"duration_ticks"`
	Stack         string             `yaml:"stack"` // none|refresh|intensify|multi
}

// AbilityDef is the YAML-facing shape of an ability.Definition.
type AbilityDef struct {
	ID               string      `yaml:"id"`
	ManaCost         float64     `yaml:"mana_cost"`
	CastStartTicks   [3]int      `yaml:"cast_start_ticks"`
	EffectPointTicks [3]int      `yaml:"effect_point_ticks"`
	CastEndTicks     [3]int      `yaml:"cast_end_ticks"`
	Delivery         string      `yaml:"delivery"` // instant|projectile|area
	Selector         string      `yaml:"selector"`
	SelectorStat     string      `yaml:"selector_stat"`
	SelectorRange    int         `yaml:"selector_range"`
	ClusterRange     int         `yaml:"cluster_range"`
	Affiliation      string      `yaml:"affiliation"` // enemies|allies|all
	ProjectileSpeed  float64     `yaml:"projectile_speed"`
	ProjectileHoming bool        `yaml:"projectile_homing"`
	ProjectileCanMiss bool       `yaml:"projectile_can_miss"`
	ProjectileCount  int         `yaml:"projectile_count"`
	Shape            string      `yaml:"shape"` // circle|cone|line
	Radius           int         `yaml:"radius"`
	ConeHalfAngleDeg float64     `yaml:"cone_half_angle_deg"`
	LineWidth        int         `yaml:"line_width"`
	SelfCentred      bool        `yaml:"self_centred"`
	Effects          []EffectDef `yaml:"effects"`
}

// UnitDef is the YAML-facing shape of a unit template.
type UnitDef struct {
	ID                  string  `yaml:"id"`
	MaxHP               float64 `yaml:"max_hp"`
	AD                  float64 `yaml:"ad"`
	AP                  float64 `yaml:"ap"`
	Armor               float64 `yaml:"armor"`
	MR                  float64 `yaml:"mr"`
	AttackSpeed         float64 `yaml:"attack_speed"`
	CritChance          float64 `yaml:"crit_chance"`
	CritDamage          float64 `yaml:"crit_damage"`
	DodgeChance         float64 `yaml:"dodge_chance"`
	Range               int     `yaml:"range"`
	MaxMana             float64 `yaml:"max_mana"`
	Lifesteal           float64 `yaml:"lifesteal"`
	Omnivamp            float64 `yaml:"omnivamp"`
	AbilityID           string  `yaml:"ability_id"`
	DefaultSelector     string  `yaml:"default_selector"`
	SelectorRange       int     `yaml:"selector_range"`
	ClassManaMultiplier float64  `yaml:"class_mana_multiplier"`
	AttackRange         int      `yaml:"attack_range"`
	Traits              []string `yaml:"traits"`
}

// TraitThreshold is one breakpoint of a trait: at Count active members, its
// effect (self-targeted, applied to every carrier) takes hold.
type TraitThreshold struct {
	Count  int       `yaml:"count"`
	Effect EffectDef `yaml:"effect"`
}

// TraitDef groups the thresholds a named trait grants at increasing counts.
type TraitDef struct {
	Tag        string           `yaml:"tag"`
	Thresholds []TraitThreshold `yaml:"thresholds"`
}

// StatMod is one flat or percent stat delta an item grants.
type StatMod struct {
	Stat    string  `yaml:"stat"`
	Flat    float64 `yaml:"flat"`
	Percent float64 `yaml:"percent"`
}

// ConditionalAmp is an item's conditional damage amplifier, e.g. "+20% vs
// targets above 50% max HP".
type ConditionalAmp struct {
	Amount             float64 `yaml:"amount"`
	TargetHPAbovePct   float64 `yaml:"target_hp_above_pct"`
	TargetHPBelowPct   float64 `yaml:"target_hp_below_pct"`
}

// TriggeredEffect names an ability-style effect list an item fires on hit
// or on taking damage.
type TriggeredEffect struct {
	AbilityID string `yaml:"ability_id"`
}

// ItemDef is the YAML-facing shape of an equippable item.
type ItemDef struct {
	ID              string            `yaml:"id"`
	StatMods        []StatMod         `yaml:"stat_mods"`
	Conditional     []ConditionalAmp  `yaml:"conditional"`
	OnHit           []TriggeredEffect `yaml:"on_hit"`
	OnTakeDamage    []TriggeredEffect `yaml:"on_take_damage"`
	AbilityCritFlag bool              `yaml:"ability_crit_flag"`
}

// DefaultsDef is the YAML-facing shape of engine.Defaults.
type DefaultsDef struct {
	TickRate           int     `yaml:"tick_rate"`
	MaxTicks           uint32  `yaml:"max_ticks"`
	AttackManaBase     float64 `yaml:"attack_mana_base"`
	CritDamage         float64 `yaml:"crit_damage"`
	ManaGainPre        float64 `yaml:"mana_gain_pre"`
	ManaGainPost       float64 `yaml:"mana_gain_post"`
	ManaGainCap        float64 `yaml:"mana_gain_cap"`
	DefaultCastStart   int     `yaml:"default_cast_start"`
	DefaultEffectPoint int     `yaml:"default_effect_point"`
	DefaultCastEnd     int     `yaml:"default_cast_end"`
}

// DeploymentDef places one instance of a UnitDef onto the board at battle
// start: which unit type, which team, which hex, its star level, and the
// items it starts equipped with.
type DeploymentDef struct {
	UnitID string   `yaml:"unit_id"`
	Team   int      `yaml:"team"`
	Q      int      `yaml:"q"`
	R      int      `yaml:"r"`
	Star   int      `yaml:"star"`
	Items  []string `yaml:"items"`
}

// Bundle is the full set of YAML-loaded tables for one battle
// configuration, matching spec.md §6's config contract verbatim.
type Bundle struct {
	Units       []UnitDef       `yaml:"units"`
	Abilities   []AbilityDef    `yaml:"abilities"`
	Traits      []TraitDef      `yaml:"traits"`
	Items       []ItemDef       `yaml:"items"`
	Deployments []DeploymentDef `yaml:"deployments"`
	Defaults    DefaultsDef     `yaml:"defaults"`
}

// Load parses a battle configuration file from raw YAML bytes.
func Load(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "parsing battle configuration")
	}
	return &b, nil
}

// ResolveUnitTemplate converts a loaded UnitDef into the engine's
// UnitTemplate plus its BaseStats, wrapping an unknown selector name as a
// configuration error per spec.md §9's "reject unknown names at load
// time" guidance.
func ResolveUnitTemplate(d UnitDef) (engine.UnitTemplate, error) {
	sel := target.Policy(d.DefaultSelector)
	if !validSelector(sel) {
		return engine.UnitTemplate{}, errors.Errorf("unit %q: unknown selector %q", d.ID, d.DefaultSelector)
	}
	return engine.UnitTemplate{
		Base: unit.BaseStats{
			MaxHP: d.MaxHP, AD: d.AD, AP: d.AP, Armor: d.Armor, MR: d.MR,
			AttackSpeed: d.AttackSpeed, CritChance: d.CritChance, CritDamage: d.CritDamage,
			DodgeChance: d.DodgeChance, Range: d.Range, MaxMana: d.MaxMana,
			Lifesteal: d.Lifesteal, Omnivamp: d.Omnivamp,
		},
		AbilityID:           d.AbilityID,
		DefaultSelector:     sel,
		SelectorRange:       d.SelectorRange,
		ClassManaMultiplier: d.ClassManaMultiplier,
		AttackRange:         d.AttackRange,
		Traits:              d.Traits,
	}, nil
}

func validSelector(p target.Policy) bool {
	switch p {
	case target.Nearest, target.Farthest, target.LowestHPPercent, target.LowestHPFlat,
		target.HighestStat, target.Cluster, target.Random, target.Frontline,
		target.Backline, target.CurrentTarget:
		return true
	default:
		return false
	}
}

// ResolveAbility converts a loaded AbilityDef into an ability.Definition.
func ResolveAbility(d AbilityDef) (ability.Definition, error) {
	effects := make([]effect.Descriptor, 0, len(d.Effects))
	for _, ed := range d.Effects {
		desc, err := resolveEffect(ed)
		if err != nil {
			return ability.Definition{}, errors.Wrapf(err, "ability %q", d.ID)
		}
		effects = append(effects, desc)
	}

	delivery, err := resolveDelivery(d.Delivery)
	if err != nil {
		return ability.Definition{}, errors.Wrapf(err, "ability %q", d.ID)
	}
	shape := resolveShape(d.Shape)
	aff := resolveAffiliation(d.Affiliation)

	return ability.Definition{
		ID:                d.ID,
		ManaCost:          d.ManaCost,
		CastStartTicks:    d.CastStartTicks,
		EffectPointTicks:  d.EffectPointTicks,
		CastEndTicks:      d.CastEndTicks,
		Delivery:          delivery,
		Selector:          target.Policy(d.Selector),
		SelectorStat:      unit.StatKey(d.SelectorStat),
		SelectorRange:     d.SelectorRange,
		ClusterRange:      d.ClusterRange,
		Affiliation:       aff,
		ProjectileSpeed:   d.ProjectileSpeed,
		ProjectileHoming:  d.ProjectileHoming,
		ProjectileCanMiss: d.ProjectileCanMiss,
		ProjectileCount:   d.ProjectileCount,
		Shape:             shape,
		Radius:            d.Radius,
		ConeHalfAngleDeg:  d.ConeHalfAngleDeg,
		LineWidth:         d.LineWidth,
		SelfCentred:       d.SelfCentred,
		Effects:           effects,
	}, nil
}

func resolveDelivery(s string) (ability.Delivery, error) {
	switch s {
	case "instant", "":
		return ability.DeliveryInstant, nil
	case "projectile":
		return ability.DeliveryProjectile, nil
	case "area":
		return ability.DeliveryArea, nil
	default:
		return 0, errors.Errorf("unknown delivery %q", s)
	}
}

func resolveShape(s string) ability.AreaShape {
	switch s {
	case "cone":
		return ability.ShapeCone
	case "line":
		return ability.ShapeLine
	default:
		return ability.ShapeCircle
	}
}

func resolveAffiliation(s string) ability.Affiliation {
	switch s {
	case "allies":
		return ability.AffiliationAllies
	case "all":
		return ability.AffiliationAll
	default:
		return ability.AffiliationEnemies
	}
}

// resolveEffect converts one EffectDef into an effect.Descriptor, rejecting
// an unrecognised Kind string rather than letting it reach effect.Apply's
// default branch at runtime.
func resolveEffect(d EffectDef) (effect.Descriptor, error) {
	kind, ok := effectKindByName[d.Kind]
	if !ok {
		return effect.Descriptor{}, errors.Errorf("unknown effect kind %q", d.Kind)
	}

	nested := make([]effect.Descriptor, 0, len(d.Nested))
	for _, n := range d.Nested {
		nd, err := resolveEffect(n)
		if err != nil {
			return effect.Descriptor{}, err
		}
		nested = append(nested, nd)
	}

	replace := make([]effect.Descriptor, 0, len(d.ReplaceEffects))
	for _, r := range d.ReplaceEffects {
		rd, err := resolveEffect(r)
		if err != nil {
			return effect.Descriptor{}, err
		}
		replace = append(replace, rd)
	}

	payload := make([]effect.Descriptor, 0, len(d.ProjectilePayload))
	for _, p := range d.ProjectilePayload {
		pd, err := resolveEffect(p)
		if err != nil {
			return effect.Descriptor{}, err
		}
		payload = append(payload, pd)
	}

	var zone *effect.Descriptor
	if d.ZoneEffect != nil {
		zd, err := resolveEffect(*d.ZoneEffect)
		if err != nil {
			return effect.Descriptor{}, err
		}
		zone = &zd
	}

	var buff effect.BuffTemplate
	if d.Buff != nil {
		buff = effect.BuffTemplate{
			ID:            d.Buff.ID,
			FlatDeltas:    statKeyMap(d.Buff.FlatDeltas),
			PercentDeltas: statKeyMap(d.Buff.PercentDeltas),
			DurationTicks: d.Buff.DurationTicks,
			Stack:         resolveStackPolicy(d.Buff.Stack),
		}
	}

	return effect.Descriptor{
		Kind:                kind,
		Values:              d.Values,
		ScalesOn:            effect.ScalingKey(d.ScalesOn),
		TargetsDefenderStat: d.TargetsDefenderStat,
		DamageType:          resolveDamageType(d.DamageType),
		DurationTicks:       d.DurationTicks,
		IntervalTicks:       d.IntervalTicks,
		Radius:              d.Radius,
		ConeHalfAngleDeg:    d.ConeHalfAngleDeg,
		LineWidth:           d.LineWidth,
		ChainCount:          d.ChainCount,
		ChainRadius:         d.ChainRadius,
		HitCount:            d.HitCount,
		StatKey:             unit.StatKey(d.StatKey),
		Pct:                 d.Pct,
		Flat:                d.Flat,
		Buff:                buff,
		StackGroup:          d.StackGroup,
		StackCap:            d.StackCap,
		KnockbackHexes:      d.KnockbackHexes,
		ManaAmount:          d.ManaAmount,
		ReplaceCount:        d.ReplaceCount,
		ReplaceEffects:      replace,
		Nested:              nested,
		NextAbilityID:       d.NextAbilityID,
		CastThreshold:       d.CastThreshold,
		ZoneEffect:          zone,
		ProjectileSpeed:     d.ProjectileSpeed,
		ProjectileHoming:    d.ProjectileHoming,
		ProjectileCanMiss:   d.ProjectileCanMiss,
		ProjectilePayload:   payload,
	}, nil
}

func statKeyMap(m map[string]float64) map[unit.StatKey]float64 {
	if m == nil {
		return nil
	}
	out := make(map[unit.StatKey]float64, len(m))
	for k, v := range m {
		out[unit.StatKey(k)] = v
	}
	return out
}

func resolveStackPolicy(s string) unit.StackPolicy {
	switch s {
	case "refresh":
		return unit.StackRefresh
	case "intensify":
		return unit.StackIntensify
	case "multi":
		return unit.StackMulti
	default:
		return unit.StackNone
	}
}

func resolveDamageType(s string) damage.Type {
	switch s {
	case "magical":
		return damage.Magical
	case "true":
		return damage.True
	default:
		return damage.Physical
	}
}

func resolveDefaults(d DefaultsDef) engine.Defaults {
	def := engine.DefaultDefaults()
	if d.TickRate > 0 {
		def.TickRate = d.TickRate
	}
	if d.MaxTicks > 0 {
		def.MaxTicks = d.MaxTicks
	}
	if d.AttackManaBase > 0 {
		def.AttackManaBase = d.AttackManaBase
	}
	if d.CritDamage > 0 {
		def.CritDamage = d.CritDamage
	}
	if d.ManaGainPre > 0 {
		def.ManaGainPre = d.ManaGainPre
	}
	if d.ManaGainPost > 0 {
		def.ManaGainPost = d.ManaGainPost
	}
	if d.ManaGainCap > 0 {
		def.ManaGainCap = d.ManaGainCap
	}
	if d.DefaultCastStart > 0 {
		def.DefaultCastStart = d.DefaultCastStart
	}
	if d.DefaultEffectPoint > 0 {
		def.DefaultEffectPoint = d.DefaultEffectPoint
	}
	if d.DefaultCastEnd > 0 {
		def.DefaultCastEnd = d.DefaultCastEnd
	}
	return def
}

// ResolveDefaults is the exported form of resolveDefaults.
func ResolveDefaults(d DefaultsDef) engine.Defaults { return resolveDefaults(d) }

// ResolveItem converts a loaded ItemDef into the engine-facing
// ItemApplication EquipItem expects.
func ResolveItem(d ItemDef) engine.ItemApplication {
	flat := make(map[unit.StatKey]float64)
	pct := make(map[unit.StatKey]float64)
	for _, m := range d.StatMods {
		if m.Flat != 0 {
			flat[unit.StatKey(m.Stat)] += m.Flat
		}
		if m.Percent != 0 {
			pct[unit.StatKey(m.Stat)] += m.Percent
		}
	}

	amps := make([]engine.ConditionalAmplifier, 0, len(d.Conditional))
	for _, c := range d.Conditional {
		c := c
		amps = append(amps, engine.ConditionalAmplifier{
			Amount: c.Amount,
			Predicate: func(targetHP, targetMaxHP float64) bool {
				if targetMaxHP <= 0 {
					return false
				}
				pct := targetHP / targetMaxHP
				if c.TargetHPAbovePct > 0 && pct < c.TargetHPAbovePct {
					return false
				}
				if c.TargetHPBelowPct > 0 && pct > c.TargetHPBelowPct {
					return false
				}
				return true
			},
		})
	}

	onHit := make([]engine.AbilityEffectTrigger, 0, len(d.OnHit))
	for _, t := range d.OnHit {
		onHit = append(onHit, engine.AbilityEffectTrigger{AbilityID: t.AbilityID})
	}
	onTake := make([]engine.AbilityEffectTrigger, 0, len(d.OnTakeDamage))
	for _, t := range d.OnTakeDamage {
		onTake = append(onTake, engine.AbilityEffectTrigger{AbilityID: t.AbilityID})
	}

	return engine.ItemApplication{
		ID:                  d.ID,
		FlatMods:            flat,
		PercentMods:         pct,
		ConditionalAmplifiers: amps,
		AbilityCritFlag:     d.AbilityCritFlag,
		OnHitEffects:        onHit,
		OnTakeDamageEffects: onTake,
	}
}

// ResolveTraitDef converts a loaded TraitDef into the engine's
// TraitDef, resolving each threshold's effect kind and rejecting an
// unknown one at load time.
func ResolveTraitDef(d TraitDef) (engine.TraitDef, error) {
	thresholds := make([]engine.TraitThresholdDef, 0, len(d.Thresholds))
	for _, th := range d.Thresholds {
		desc, err := resolveEffect(th.Effect)
		if err != nil {
			return engine.TraitDef{}, errors.Wrapf(err, "trait %q", d.Tag)
		}
		thresholds = append(thresholds, engine.TraitThresholdDef{Count: th.Count, Effect: desc})
	}
	return engine.TraitDef{Tag: d.Tag, Thresholds: thresholds}, nil
}

var effectKindByName = map[string]effect.Kind{
	"damage":               effect.KindDamage,
	"hybrid_damage":        effect.KindHybridDamage,
	"dot":                  effect.KindDoT,
	"burn":                 effect.KindBurn,
	"execute":              effect.KindExecute,
	"percent_hp_damage":    effect.KindPercentHPDamage,
	"splash_damage":        effect.KindSplashDamage,
	"ricochet":             effect.KindRicochet,
	"multi_hit":            effect.KindMultiHit,
	"dash_through":         effect.KindDashThrough,
	"projectile_swarm":     effect.KindProjectileSwarm,
	"projectile_spread":    effect.KindProjectileSpread,
	"sunder":               effect.KindSunder,
	"shred":                effect.KindShred,
	"stun":                 effect.KindStun,
	"slow":                 effect.KindSlow,
	"chill":                effect.KindChill,
	"silence":              effect.KindSilence,
	"disarm":               effect.KindDisarm,
	"knockback":            effect.KindKnockback,
	"pull":                 effect.KindPull,
	"taunt":                effect.KindTaunt,
	"heal":                 effect.KindHeal,
	"heal_over_time":       effect.KindHealOverTime,
	"shield":               effect.KindShield,
	"shield_self":          effect.KindShieldSelf,
	"buff":                 effect.KindBuff,
	"buff_team":            effect.KindBuffTeam,
	"decaying_buff":        effect.KindDecayingBuff,
	"stacking_buff":        effect.KindStackingBuff,
	"mana_grant":           effect.KindManaGrant,
	"cleanse":              effect.KindCleanse,
	"dash":                 effect.KindDash,
	"effect_group":         effect.KindEffectGroup,
	"create_zone":          effect.KindCreateZone,
	"interval_trigger":     effect.KindIntervalTrigger,
	"permanent_stack":      effect.KindPermanentStack,
	"mana_reave":           effect.KindManaReave,
	"replace_attacks":      effect.KindReplaceAttacks,
	"transform":            effect.KindTransform,
	"transform_after_casts": effect.KindTransformAfterCasts,
	"escalating_ability":   effect.KindEscalatingAbility,
}
