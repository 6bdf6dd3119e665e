package isbn

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"13位纯数字", "9787020090006", true},
		{"10位纯数字", "7020090001", true},
		{"13位带连字符", "978-7-115-42802-8", true},
		{"10位带连字符", "7-115-42802-8", true},
		{"空字符串", "", false},
		{"位数不足", "123", false},
		{"11位", "97870200900", false},
		{"14位", "97870200900061", false},
		{"含字母", "978702009000X", false},
		{"含空格", "978 7020090006", false},
		{"只有连字符", "---", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValid(tc.in); got != tc.want {
				t.Errorf("IsValid(%q) = %v, 期望 %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("978-7-115-42802-8"); got != "9787115428028" {
		t.Errorf("Normalize结果不正确: %q", got)
	}
	if got := Normalize("9787020090006"); got != "9787020090006" {
		t.Errorf("无连字符时应原样返回: %q", got)
	}
}
