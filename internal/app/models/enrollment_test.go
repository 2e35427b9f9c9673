package models

import "testing"

func ptr(v float64) *float64 { return &v }

func TestEnrollmentAverageGrade(t *testing.T) {
	for name, testcase := range map[string]struct {
		enrollment Enrollment
		want       *float64
	}{
		"no grades set": {
			enrollment: Enrollment{},
			want:       nil,
		},
		"single grade": {
			enrollment: Enrollment{PrelimsGrade: ptr(85)},
			want:       ptr(85),
		},
		"two grades": {
			enrollment: Enrollment{PrelimsGrade: ptr(80), FinalsGrade: ptr(91)},
			want:       ptr(85.5),
		},
		"all three grades": {
			enrollment: Enrollment{
				PrelimsGrade:  ptr(80),
				MidtermsGrade: ptr(85),
				FinalsGrade:   ptr(90),
			},
			want: ptr(85),
		},
		"rounds to two decimals": {
			enrollment: Enrollment{
				PrelimsGrade:  ptr(80),
				MidtermsGrade: ptr(85),
				FinalsGrade:   ptr(86),
			},
			want: ptr(83.67),
		},
		"zero is a grade, not absence": {
			enrollment: Enrollment{PrelimsGrade: ptr(0), MidtermsGrade: ptr(100)},
			want:       ptr(50),
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := testcase.enrollment.AverageGrade()

			if testcase.want == nil {
				if got != nil {
					t.Errorf("expected nil average, got %v", *got)
				}
				return
			}

			if got == nil {
				t.Fatalf("expected average %v, got nil", *testcase.want)
			}
			if *got != *testcase.want {
				t.Errorf("expected average %v, got %v", *testcase.want, *got)
			}
		})
	}
}
