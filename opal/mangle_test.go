package opal

import "testing"

func Test_MangleLocal_ReservedWordGetsSuffixed(t *testing.T) {
	if got := MangleLocal("var"); got != "var$" {
		t.Fatalf("MangleLocal(var) = %q, want var$", got)
	}
	if got := MangleLocal("foo"); got != "foo" {
		t.Fatalf("MangleLocal(foo) = %q, want foo", got)
	}
}

func Test_IsReserved(t *testing.T) {
	for _, w := range []string{"class", "let", "typeof", "super"} {
		if !IsReserved(w) {
			t.Fatalf("IsReserved(%q) = false, want true", w)
		}
	}
	if IsReserved("foo") {
		t.Fatalf("IsReserved(foo) = true, want false")
	}
}

func Test_MidToJSID_PlainName(t *testing.T) {
	if got := MidToJSID("foo"); got != ".$foo" {
		t.Fatalf("MidToJSID(foo) = %q, want .$foo", got)
	}
}

func Test_MidToJSID_OperatorNameUsesBracketForm(t *testing.T) {
	cases := map[string]string{
		"==": "['$==']",
		"[]": "['$[]']",
		"+":  "['$+']",
	}
	for in, want := range cases {
		if got := MidToJSID(in); got != want {
			t.Fatalf("MidToJSID(%q) = %q, want %q", in, got, want)
		}
	}
}

func Test_IvarAccessor(t *testing.T) {
	if got := IvarAccessor("name"); got != ".name" {
		t.Fatalf("IvarAccessor(name) = %q, want .name", got)
	}
	if got := IvarAccessor("class"); got != "['class']" {
		t.Fatalf("IvarAccessor(class) = %q, want ['class']", got)
	}
}

func Test_ivarProperty_StripsAt(t *testing.T) {
	if got := ivarProperty("@name"); got != "name" {
		t.Fatalf("ivarProperty(@name) = %q, want name", got)
	}
}

func Test_mangleClassVar_Identity(t *testing.T) {
	if got := mangleClassVar("@@count"); got != "@@count" {
		t.Fatalf("mangleClassVar(@@count) = %q, want @@count", got)
	}
}
