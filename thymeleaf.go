// Package thymeleaf provides server-side HTML templating driven by element
// attributes, in the style of Thymeleaf.
//
// A template is a complete HTML document. Elements carrying a dialect
// attribute, either namespaced (th:text) or as a data attribute
// (data-th-text), are rewritten by the attribute processor registered for
// that name:
//
//	<html xmlns:th="http://www.thymeleaf.org">
//	  <p th:if="${showGreeting}" th:text="${greeting}">placeholder</p>
//	</html>
//
// # Basic Usage
//
//	engine := thymeleaf.MustNew()
//	out, err := engine.Process(ctx, source, map[string]any{
//	    "greeting":     "Hello!",
//	    "showGreeting": true,
//	})
//
// The namespace declaration xmlns:th is removed from the output.
//
// # Standard Dialect
//
// The default dialect (prefix "th") registers, in order:
//
//	th:if           keep the element when the expression is truthy
//	th:unless       keep the element when the expression is falsy
//	th:text         replace the content with escaped text
//	th:utext        replace the content with sanitized markup
//	th:classappend  append classes to the class attribute
//	th:remove       all | body | tag | none
//
// Processors run in registration order on each element, and an element is
// processed before its children.
//
// # Expressions
//
// Attribute values are expressions: variables (${user.name}), string literals
// ('text'), numbers, true/false, null, bare tokens, negation (!x, not x) and
// concatenation with +. A variable that is not in the data evaluates to null.
//
// # Custom Dialects
//
// Build a dialect and register processors, then hand it to an engine:
//
//	dialect, _ := thymeleaf.NewDialect("app", "app")
//	dialect.MustRegister(thymeleaf.NewProcessorFunc("upper", "app",
//	    func(ctx context.Context, el *thymeleaf.Element, name, value string, data *thymeleaf.Context) error {
//	        el.RemoveAttribute(name)
//	        s, err := data.EvaluateString(value)
//	        if err != nil {
//	            return err
//	        }
//	        el.SetText(strings.ToUpper(s))
//	        return nil
//	    }))
//	engine := thymeleaf.MustNew(thymeleaf.WithDialect(dialect))
//
// A dialect is read-only once an engine uses it.
//
// # Template Resolvers
//
// ProcessTemplate looks templates up by name through a TemplateResolver:
// MemoryResolver, FileResolver, SQLResolver (PostgreSQL or SQLite), and
// CachingResolver, which a FileWatcher can invalidate when files change.
//
// # Errors
//
// All errors are *cuserr.CustomError values carrying a code
// (THYMELEAF_EXPRESSION, THYMELEAF_DOCUMENT, ...) and metadata, and wrap the
// underlying cause for errors.Is and errors.As.
package thymeleaf
