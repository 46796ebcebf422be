package javaparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageController = `
package com.acme.api;

import com.acme.model.User;
import java.util.*;
import org.springframework.http.ResponseEntity;
import org.springframework.web.bind.annotation.*;

/**
 * Users, paged. The word class appears in this comment.
 */
@RestController
@RequestMapping(value = "/api/users", produces = "application/json")
public class UserController extends BaseController<User, Long> implements Auditable, Named<String> {

    private final Map<String, List<User>> cache = new HashMap<>();

    public UserController(UserService service) {
        this.service = service;
        helper(service);
    }

    /**
     * Finds a page of users. Results are sorted.
     * @param q the query
     */
    @GetMapping({"/", "/search"})
    public ResponseEntity<Page<User>> search(
            @RequestParam(value = "q", required = false) String q,
            @RequestParam(name = "size", defaultValue = "20") int size) throws IOException {
        // return find(q) is not a declaration
        String s = "a { brace";
        return ResponseEntity.ok(find(q, size));
    }

    @PostMapping(path = "/{id}/tags", consumes = {"application/json"})
    public <T extends Comparable<T> & java.io.Serializable> List<T> tag(@PathVariable("id") final Long id,
                                                                    @RequestBody @Valid List<T> tags) {
        return tags;
    }

    @RequestMapping(value = "/legacy", method = RequestMethod.POST)
    String[] legacy(String... names) throws Exception { return names; }

    abstract Map.Entry<String, ?> entry();
}
`

func TestParseJavaFile(t *testing.T) {
	jc, err := ParseJavaFile(pageController)
	require.NoError(t, err)

	assert.Equal(t, "com.acme.api", jc.Package)
	assert.Equal(t, "UserController", jc.Name)
	assert.Equal(t, "class", jc.Kind)
	assert.Equal(t, "com.acme.api.UserController", jc.FullName())
	assert.Contains(t, jc.Imports, "java.util.*")
	assert.Contains(t, jc.Imports, "com.acme.model.User")
	assert.Equal(t, []string{"BaseController<User, Long>"}, jc.Extends)
	assert.Equal(t, []string{"Auditable", "Named<String>"}, jc.Implements)
	assert.True(t, jc.IsController())
	assert.True(t, jc.IsRestController())
	assert.Equal(t, "/api/users", jc.GetClassLevelURL())

	names := make([]string, 0, len(jc.Methods))
	for _, m := range jc.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"search", "tag", "legacy", "entry"}, names)
}

func TestParseMethods(t *testing.T) {
	jc, err := ParseJavaFile(pageController)
	require.NoError(t, err)
	require.Len(t, jc.Methods, 4)

	search := jc.Methods[0]
	assert.Equal(t, "ResponseEntity<Page<User>>", search.ReturnType)
	assert.Equal(t, "Finds a page of users. Results are sorted.", search.JavaDoc)
	assert.Equal(t, "Finds a page of users.", search.Summary())
	assert.Equal(t, []string{"/", "/search"}, search.GetMethodPaths())
	assert.Equal(t, "GET", search.GetHTTPMethod())
	assert.True(t, search.IsEndpoint())
	require.Len(t, search.Params, 2)
	assert.Equal(t, "q", search.Params[0].Name)
	assert.Equal(t, "String", search.Params[0].Type)
	rp, ok := search.Params[0].Annotation("RequestParam")
	require.True(t, ok)
	assert.Equal(t, "q", rp.Value("value"))
	assert.Equal(t, "false", rp.Value("required"))
	size, _ := search.Params[1].Annotation("RequestParam")
	assert.Equal(t, "20", size.Value("defaultValue"))

	tag := jc.Methods[1]
	require.Len(t, tag.TypeParams, 1)
	assert.Equal(t, "T", tag.TypeParams[0].Name)
	assert.Equal(t, []string{"Comparable<T>", "java.io.Serializable"}, tag.TypeParams[0].Bounds)
	assert.Equal(t, "List<T>", tag.ReturnType)
	assert.Equal(t, []string{"/{id}/tags"}, tag.GetMethodPaths())
	assert.Equal(t, "POST", tag.GetHTTPMethod())
	require.Len(t, tag.Params, 2)
	assert.Equal(t, "id", tag.Params[0].Name)
	assert.Equal(t, "Long", tag.Params[0].Type)
	assert.Len(t, tag.Params[1].Annotations, 2)
	assert.Equal(t, "List<T>", tag.Params[1].Type)

	legacy := jc.Methods[2]
	assert.Equal(t, "String[]", legacy.ReturnType)
	assert.Equal(t, "POST", legacy.GetHTTPMethod())
	assert.Equal(t, "String...", legacy.Params[0].Type)

	entry := jc.Methods[3]
	assert.True(t, entry.Abstract)
	assert.False(t, entry.IsEndpoint())
	assert.Nil(t, entry.GetMethodPaths())
}

func TestParseGenericInterface(t *testing.T) {
	src := `
package com.acme.api;

public interface CrudApi<E extends Entity<ID>, ID extends java.io.Serializable> extends Api<E> {
    @GetMapping("/{id}")
    E get(@PathVariable ID id);

    default String name() { return "crud"; }
}
`
	jc, err := ParseJavaFile(src)
	require.NoError(t, err)
	assert.Equal(t, "interface", jc.Kind)
	require.Len(t, jc.TypeParams, 2)
	assert.Equal(t, TypeParam{Name: "E", Bounds: []string{"Entity<ID>"}}, jc.TypeParams[0])
	assert.Equal(t, TypeParam{Name: "ID", Bounds: []string{"java.io.Serializable"}}, jc.TypeParams[1])
	assert.Equal(t, []string{"Api<E>"}, jc.Extends)
	require.Len(t, jc.Methods, 2)
	assert.True(t, jc.Methods[0].Abstract)
	assert.Equal(t, "E", jc.Methods[0].ReturnType)
	assert.Equal(t, "ID", jc.Methods[0].Params[0].Type)
	assert.False(t, jc.Methods[1].Abstract)
}

func TestParseAnnotations(t *testing.T) {
	anns := ParseAnnotations(`@org.springframework.web.bind.annotation.GetMapping(value = {"/a", "/b"}, params = "x=1") @Deprecated`)
	require.Len(t, anns, 2)
	assert.Equal(t, "GetMapping", anns[0].Name)
	assert.Equal(t, []string{"/a", "/b"}, anns[0].Values("value"))
	assert.Equal(t, "x=1", anns[0].Value("params"))
	assert.Equal(t, "Deprecated", anns[1].Name)
	assert.Empty(t, anns[1].Attributes)
}

func TestStripComments(t *testing.T) {
	src := "String url = \"http://x//y\"; // trailing\n/* block */ int a; /** doc */ int b;"
	assert.Equal(t, "String url = \"http://x//y\"; \n  int a; /** doc */ int b;", StripComments(src, true))
	assert.Equal(t, "String url = \"http://x//y\"; \n  int a;   int b;", StripComments(src, false))
}

func TestSplitTopLevel(t *testing.T) {
	assert.Equal(t, []string{"Map<String, Integer> m", `@RequestParam(value = "a,b") String s`},
		SplitTopLevel(`Map<String, Integer> m, @RequestParam(value = "a,b") String s`, ','))
	assert.Equal(t, []string{"Comparable<T>", "Serializable"}, SplitTopLevel("Comparable<T> & Serializable", '&'))
	assert.Empty(t, SplitTopLevel("  ", ','))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "Map<String,List<T>>", NormalizeSpace("Map< String , List<T> >"))
	assert.Equal(t, "String[]", NormalizeSpace("String [ ]"))
	assert.Equal(t, "A & B", NormalizeSpace("A&B"))
}
