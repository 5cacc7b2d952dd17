// file: internals/features/lembaga/registrations/service/reward.go
package service

import (
	examModel "beasiswaku_backend/internals/features/lembaga/exams/model"
	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

// ResolveReward mencari tier pertama yang range-nya memuat rank.
// Rank dipasok eksternal (file hasil sudah ter-rank oleh evaluator),
// sistem hanya memvalidasi positif — tidak pernah menghitung ranking.
func ResolveReward(tiers []examModel.RewardTier, rank int) (*examModel.RewardTier, bool) {
	if rank <= 0 {
		return nil, false
	}
	for i := range tiers {
		t := tiers[i]
		if rank >= t.RankFrom && rank <= t.RankTo {
			return &t, true
		}
	}
	return nil, false
}

// ApplyReward men-snapshot tier yang kena ke registrasi; di luar semua
// tier berarti reward_eligible=false dan detail dikosongkan.
func ApplyReward(reg *model.RegistrationModel, tiers []examModel.RewardTier, rank int) {
	tier, ok := ResolveReward(tiers, rank)
	if !ok {
		reg.RegistrationRewardEligible = false
		reg.RegistrationRewardType = nil
		reg.RegistrationRewardValue = nil
		reg.RegistrationRewardDescription = nil
		return
	}
	reg.RegistrationRewardEligible = true
	rt := tier.RewardType
	rv := tier.RewardValue
	reg.RegistrationRewardType = &rt
	reg.RegistrationRewardValue = &rv
	if tier.Description != "" {
		desc := tier.Description
		reg.RegistrationRewardDescription = &desc
	} else {
		reg.RegistrationRewardDescription = nil
	}
}
