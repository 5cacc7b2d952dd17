// file: internals/features/lembaga/registrations/service/reward_test.go
package service

import (
	"testing"

	examModel "beasiswaku_backend/internals/features/lembaga/exams/model"
	model "beasiswaku_backend/internals/features/lembaga/registrations/model"
)

func testTiers() []examModel.RewardTier {
	return []examModel.RewardTier{
		{RankFrom: 1, RankTo: 1, RewardType: "scholarship_percent", RewardValue: "100", Description: "Beasiswa penuh"},
		{RankFrom: 2, RankTo: 5, RewardType: "scholarship_percent", RewardValue: "50"},
		{RankFrom: 6, RankTo: 10, RewardType: "scholarship_percent", RewardValue: "25"},
	}
}

func TestResolveReward(t *testing.T) {
	tiers := testTiers()

	cases := []struct {
		rank      int
		wantOK    bool
		wantValue string
	}{
		{1, true, "100"},
		{2, true, "50"},
		{5, true, "50"},
		{6, true, "25"},
		{10, true, "25"},
		{11, false, ""},
		{0, false, ""},
		{-1, false, ""},
	}
	for _, tc := range cases {
		tier, ok := ResolveReward(tiers, tc.rank)
		if ok != tc.wantOK {
			t.Fatalf("ResolveReward(rank=%d) ok = %v, want %v", tc.rank, ok, tc.wantOK)
		}
		if ok && tier.RewardValue != tc.wantValue {
			t.Fatalf("ResolveReward(rank=%d) value = %q, want %q", tc.rank, tier.RewardValue, tc.wantValue)
		}
	}
}

func TestApplyReward_SnapshotAndClear(t *testing.T) {
	tiers := testTiers()

	reg := &model.RegistrationModel{}
	ApplyReward(reg, tiers, 1)
	if !reg.RegistrationRewardEligible {
		t.Fatalf("rank 1 harus reward eligible")
	}
	if reg.RegistrationRewardValue == nil || *reg.RegistrationRewardValue != "100" {
		t.Fatalf("reward value snapshot salah: %v", reg.RegistrationRewardValue)
	}
	if reg.RegistrationRewardDescription == nil || *reg.RegistrationRewardDescription != "Beasiswa penuh" {
		t.Fatalf("deskripsi snapshot salah: %v", reg.RegistrationRewardDescription)
	}

	// rank turun ke luar semua tier: snapshot lama dibersihkan
	ApplyReward(reg, tiers, 50)
	if reg.RegistrationRewardEligible {
		t.Fatalf("rank 50 tidak boleh eligible")
	}
	if reg.RegistrationRewardType != nil || reg.RegistrationRewardValue != nil || reg.RegistrationRewardDescription != nil {
		t.Fatalf("detail reward harus dikosongkan setelah keluar tier")
	}

	// tier tanpa deskripsi: field deskripsi nil
	ApplyReward(reg, tiers, 3)
	if !reg.RegistrationRewardEligible || reg.RegistrationRewardDescription != nil {
		t.Fatalf("tier tanpa deskripsi harus eligible dengan deskripsi nil")
	}
}
