package effect

import "github.com/rentierek/data-driven-autochess/internal/unit"

// Apply dispatches d to its kind's application function. A Kind with no
// case here reaches the default branch, which returns Result{Applied: false}
// without reporting an error; the loader rejects unknown kind strings
// before any Descriptor reaches Apply.
func Apply(d Descriptor, caster, target *unit.Unit, star int, ctx Context) Result {
	ctx.EmitEffect(d.Kind, caster.ID, targetID(target), 0)

	switch d.Kind {
	case KindDamage:
		return applyDamage(d, caster, target, star, ctx)
	case KindHybridDamage:
		return applyHybridDamage(d, caster, target, star, ctx)
	case KindDoT:
		return applyDoT(d, caster, target, star, ctx)
	case KindBurn:
		return applyBurn(d, caster, target, star, ctx)
	case KindExecute:
		return applyExecute(d, caster, target, star, ctx)
	case KindPercentHPDamage:
		return applyPercentHPDamage(d, caster, target, star, ctx)
	case KindSplashDamage:
		return applySplashDamage(d, caster, target, star, ctx)
	case KindRicochet:
		return applyRicochet(d, caster, target, star, ctx)
	case KindMultiHit:
		return applyMultiHit(d, caster, target, star, ctx)
	case KindDashThrough:
		return applyDashThrough(d, caster, target, star, ctx)
	case KindProjectileSwarm:
		return applyProjectileSwarm(d, caster, target, star, ctx)
	case KindProjectileSpread:
		return applyProjectileSpread(d, caster, target, star, ctx)

	case KindSunder:
		return applySunder(d, caster, target, star, ctx)
	case KindShred:
		return applyShred(d, caster, target, star, ctx)

	case KindStun:
		return applyStun(d, caster, target, star, ctx)
	case KindSlow:
		return applySlow(d, caster, target, star, ctx)
	case KindChill:
		return applyChill(d, caster, target, star, ctx)
	case KindSilence:
		return applySilence(d, caster, target, star, ctx)
	case KindDisarm:
		return applyDisarm(d, caster, target, star, ctx)
	case KindKnockback:
		return applyKnockback(d, caster, target, star, ctx)
	case KindPull:
		return applyPull(d, caster, target, star, ctx)
	case KindTaunt:
		return applyTaunt(d, caster, target, star, ctx)

	case KindHeal:
		return applyHeal(d, caster, target, star, ctx)
	case KindHealOverTime:
		return applyHealOverTime(d, caster, target, star, ctx)
	case KindShield:
		return applyShield(d, caster, target, star, ctx)
	case KindShieldSelf:
		return applyShieldSelf(d, caster, target, star, ctx)
	case KindBuff:
		return applyBuff(d, caster, target, star, ctx)
	case KindBuffTeam:
		return applyBuffTeam(d, caster, target, star, ctx)
	case KindDecayingBuff:
		return applyDecayingBuff(d, caster, target, star, ctx)
	case KindStackingBuff:
		return applyStackingBuff(d, caster, target, star, ctx)
	case KindManaGrant:
		return applyManaGrant(d, caster, target, star, ctx)
	case KindCleanse:
		return applyCleanse(d, caster, target, star, ctx)

	case KindDash:
		return applyDash(d, caster, target, star, ctx)

	case KindEffectGroup:
		return applyEffectGroup(d, caster, target, star, ctx)
	case KindCreateZone:
		return applyCreateZone(d, caster, target, star, ctx)
	case KindIntervalTrigger:
		return applyIntervalTrigger(d, caster, target, star, ctx)
	case KindPermanentStack:
		return applyPermanentStack(d, caster, target, star, ctx)
	case KindManaReave:
		return applyManaReave(d, caster, target, star, ctx)
	case KindReplaceAttacks:
		return applyReplaceAttacks(d, caster, target, star, ctx)
	case KindTransform:
		return applyTransform(d, caster, target, star, ctx)
	case KindTransformAfterCasts:
		return applyTransformAfterCasts(d, caster, target, star, ctx)
	case KindEscalatingAbility:
		return applyEscalatingAbility(d, caster, target, star, ctx)

	default:
		return Result{Applied: false}
	}
}

func targetID(u *unit.Unit) uint64 {
	if u == nil {
		return 0
	}
	return u.ID
}
